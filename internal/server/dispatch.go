package server

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	cycledomain "github.com/Ed-Isingoma/hostelmgrserv/internal/billingcycle/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// The dispatch endpoint keeps the ledger's historical calling
// convention: one POST with an operation name and positional params.
// Every operation is registered up front with a parameter schema, and
// params are checked against it before any handler code runs.

type argKind int

const (
	argID argKind = iota
	argString
	argInt
	argMoney
	argDate
	argObject
)

func (k argKind) String() string {
	switch k {
	case argID:
		return "id"
	case argString:
		return "string"
	case argInt:
		return "integer"
	case argMoney:
		return "amount"
	case argDate:
		return "date"
	case argObject:
		return "object"
	default:
		return "unknown"
	}
}

type argSpec struct {
	name     string
	kind     argKind
	optional bool
}

// args holds params already coerced against the operation's schema, so
// handler accessors cannot fail.
type args []any

func (a args) Has(i int) bool { return i < len(a) && a[i] != nil }

func (a args) ID(i int) snowflake.ID {
	if !a.Has(i) {
		return 0
	}
	return a[i].(snowflake.ID)
}

func (a args) Str(i int) string {
	if !a.Has(i) {
		return ""
	}
	return a[i].(string)
}

func (a args) Int(i int) int {
	if !a.Has(i) {
		return 0
	}
	return a[i].(int)
}

func (a args) Money(i int) int64 {
	if !a.Has(i) {
		return 0
	}
	return a[i].(int64)
}

func (a args) Date(i int) time.Time {
	if !a.Has(i) {
		return time.Time{}
	}
	return a[i].(time.Time)
}

func (a args) Object(i int) map[string]any {
	if !a.Has(i) {
		return nil
	}
	return a[i].(map[string]any)
}

type operation struct {
	params  []argSpec
	handler func(c *gin.Context, in args) (any, error)
}

type Dispatcher struct {
	ops map[string]operation
	log *zap.Logger
}

func NewDispatcher(log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		ops: make(map[string]operation),
		log: log.Named("server.dispatch"),
	}
}

func (d *Dispatcher) register(name string, params []argSpec, handler func(c *gin.Context, in args) (any, error)) {
	if _, exists := d.ops[name]; exists {
		panic("duplicate operation: " + name)
	}
	d.ops[name] = operation{params: params, handler: handler}
}

type callRequest struct {
	FuncName string `json:"funcName"`
	Params   []any  `json:"params"`
}

// Handle is the gin handler behind POST /call.
func (d *Dispatcher) Handle(c *gin.Context) {
	var req callRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	op, ok := d.ops[req.FuncName]
	if !ok {
		d.log.Warn("unknown operation called", zap.String("func_name", req.FuncName))
		AbortWithError(c, ErrUnknownOperation)
		return
	}

	coerced, err := coerceParams(op.params, req.Params)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := op.handler(c, coerced)
	if err != nil {
		d.log.Warn("operation failed",
			zap.String("func_name", req.FuncName),
			zap.Error(err),
		)
		AbortWithError(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true, "data": resp})
}

func coerceParams(specs []argSpec, raw []any) (args, error) {
	required := 0
	for _, spec := range specs {
		if !spec.optional {
			required++
		}
	}
	if len(raw) < required || len(raw) > len(specs) {
		return nil, invalidParamsError(fmt.Sprintf(
			"expected between %d and %d params, got %d", required, len(specs), len(raw)))
	}

	out := make(args, len(raw))
	for i, value := range raw {
		spec := specs[i]
		if value == nil {
			if spec.optional {
				continue
			}
			return nil, invalidParamsError(fmt.Sprintf("param %q must not be null", spec.name))
		}
		coerced, err := coerceValue(spec, value)
		if err != nil {
			return nil, err
		}
		out[i] = coerced
	}
	return out, nil
}

func coerceValue(spec argSpec, value any) (any, error) {
	switch spec.kind {
	case argID:
		switch v := value.(type) {
		case string:
			id, err := snowflake.ParseString(v)
			if err != nil {
				return nil, badParam(spec, value)
			}
			return id, nil
		case float64:
			if v != math.Trunc(v) {
				return nil, badParam(spec, value)
			}
			return snowflake.ID(int64(v)), nil
		}
	case argString:
		if v, ok := value.(string); ok {
			return v, nil
		}
	case argInt:
		if v, ok := value.(float64); ok && v == math.Trunc(v) {
			return int(v), nil
		}
	case argMoney:
		if v, ok := value.(float64); ok && v == math.Trunc(v) {
			return int64(v), nil
		}
	case argDate:
		if v, ok := value.(string); ok {
			date, err := cycledomain.ParseDate(v)
			if err != nil {
				return nil, badParam(spec, value)
			}
			return date, nil
		}
	case argObject:
		if v, ok := value.(map[string]any); ok {
			return v, nil
		}
	}
	return nil, badParam(spec, value)
}

func badParam(spec argSpec, value any) *APIError {
	return invalidParamsError(fmt.Sprintf("param %q must be a %s, got %T", spec.name, spec.kind, value))
}

// decodeInto maps a loose params object onto a typed request struct,
// rejecting fields of the wrong shape.
func decodeInto(src map[string]any, dst any) error {
	buf, err := json.Marshal(src)
	if err != nil {
		return invalidParamsError("object param could not be encoded")
	}
	if err := json.Unmarshal(buf, dst); err != nil {
		return invalidParamsError("object param has fields of the wrong type")
	}
	return nil
}
