package server

import (
	"time"

	accountdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/account/domain"
	cycledomain "github.com/Ed-Isingoma/hostelmgrserv/internal/billingcycle/domain"
	contractdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/contract/domain"
	expensedomain "github.com/Ed-Isingoma/hostelmgrserv/internal/expense/domain"
	paymentdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/payment/domain"
	roomdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/room/domain"
	tenantdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/tenant/domain"
	"github.com/gin-gonic/gin"
)

// registerOperations binds every callable operation to its parameter
// schema. Names follow the historical surface the frontend already
// speaks, so old clients keep working against the new engine.
func (s *Server) registerOperations() {
	d := s.dispatcher

	// accounts
	d.register("login", []argSpec{
		{name: "username", kind: argString},
		{name: "password", kind: argString},
	}, func(c *gin.Context, in args) (any, error) {
		return s.accountSvc.Login(c.Request.Context(), in.Str(0), in.Str(1))
	})
	d.register("createAccount", []argSpec{
		{name: "username", kind: argString},
		{name: "password", kind: argString},
		{name: "role", kind: argString, optional: true},
	}, func(c *gin.Context, in args) (any, error) {
		role := accountdomain.RoleCustodian
		if in.Has(2) {
			role = accountdomain.Role(in.Str(2))
		}
		return s.accountSvc.Create(c.Request.Context(), accountdomain.CreateAccountRequest{
			Username: in.Str(0),
			Password: in.Str(1),
			Role:     role,
		})
	})
	d.register("updateAccount", []argSpec{
		{name: "accountId", kind: argID},
		{name: "updatedFields", kind: argObject},
	}, func(c *gin.Context, in args) (any, error) {
		var req accountdomain.UpdateAccountRequest
		if err := decodeInto(in.Object(1), &req); err != nil {
			return nil, err
		}
		return s.accountSvc.Update(c.Request.Context(), in.ID(0), req)
	})
	d.register("deleteAccount", []argSpec{
		{name: "accountId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.accountSvc.Delete(c.Request.Context(), in.ID(0))
	})
	d.register("getAccountById", []argSpec{
		{name: "accountId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.accountSvc.Get(c.Request.Context(), in.ID(0))
	})
	d.register("getAccountsDeadAndLiving", nil, func(c *gin.Context, in args) (any, error) {
		return s.accountSvc.List(c.Request.Context())
	})
	d.register("getUnapprovedAccounts", nil, func(c *gin.Context, in args) (any, error) {
		return s.accountSvc.ListUnapproved(c.Request.Context())
	})

	// tenants
	d.register("createTenant", []argSpec{
		{name: "tenant", kind: argObject},
	}, func(c *gin.Context, in args) (any, error) {
		var req tenantdomain.CreateTenantRequest
		if err := decodeInto(in.Object(0), &req); err != nil {
			return nil, err
		}
		return s.tenantSvc.Create(c.Request.Context(), req)
	})
	d.register("updateTenant", []argSpec{
		{name: "tenantId", kind: argID},
		{name: "updatedFields", kind: argObject},
	}, func(c *gin.Context, in args) (any, error) {
		var req tenantdomain.UpdateTenantRequest
		if err := decodeInto(in.Object(1), &req); err != nil {
			return nil, err
		}
		return s.tenantSvc.Update(c.Request.Context(), in.ID(0), req)
	})
	d.register("deleteTenant", []argSpec{
		{name: "tenantId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.tenantSvc.Delete(c.Request.Context(), in.ID(0))
	})
	d.register("getFullTenantProfile", []argSpec{
		{name: "tenantId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.tenantSvc.Profile(c.Request.Context(), in.ID(0))
	})
	d.register("getAllTenants", []argSpec{
		{name: "periodNameId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.tenantSvc.ListByCycle(c.Request.Context(), in.ID(0))
	})
	d.register("getTenantsByBillingPeriodName", []argSpec{
		{name: "periodNameId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.tenantSvc.ListByCycle(c.Request.Context(), in.ID(0))
	})
	d.register("getAllTenantsNameAndId", []argSpec{
		{name: "periodNameId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.tenantSvc.ListRefsByCycle(c.Request.Context(), in.ID(0))
	})
	d.register("getTenantsByLevel", []argSpec{
		{name: "levelNumber", kind: argInt},
		{name: "periodNameId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.tenantSvc.ListByLevel(c.Request.Context(), in.Int(0), in.ID(1))
	})
	d.register("searchTenantByName", []argSpec{
		{name: "name", kind: argString},
	}, func(c *gin.Context, in args) (any, error) {
		return s.tenantSvc.SearchByName(c.Request.Context(), in.Str(0))
	})
	d.register("searchTenantNameAndId", []argSpec{
		{name: "name", kind: argString},
	}, func(c *gin.Context, in args) (any, error) {
		return s.tenantSvc.SearchByName(c.Request.Context(), in.Str(0))
	})

	// rooms
	d.register("createRoom", []argSpec{
		{name: "room", kind: argObject},
	}, func(c *gin.Context, in args) (any, error) {
		var req roomdomain.CreateRoomRequest
		if err := decodeInto(in.Object(0), &req); err != nil {
			return nil, err
		}
		return s.roomSvc.Create(c.Request.Context(), req)
	})
	d.register("updateRoom", []argSpec{
		{name: "roomId", kind: argID},
		{name: "updatedFields", kind: argObject},
	}, func(c *gin.Context, in args) (any, error) {
		var req roomdomain.UpdateRoomRequest
		if err := decodeInto(in.Object(1), &req); err != nil {
			return nil, err
		}
		return s.roomSvc.Update(c.Request.Context(), in.ID(0), req)
	})
	d.register("deleteRoom", []argSpec{
		{name: "roomId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.roomSvc.Delete(c.Request.Context(), in.ID(0))
	})
	d.register("getAllRooms", nil, func(c *gin.Context, in args) (any, error) {
		return s.roomSvc.List(c.Request.Context())
	})
	d.register("getLevels", nil, func(c *gin.Context, in args) (any, error) {
		return s.roomSvc.Levels(c.Request.Context())
	})
	d.register("searchRoomByNamePart", []argSpec{
		{name: "name", kind: argString},
	}, func(c *gin.Context, in args) (any, error) {
		return s.roomSvc.SearchByName(c.Request.Context(), in.Str(0))
	})

	// billing cycles
	d.register("createBillingPeriodName", []argSpec{
		{name: "periodName", kind: argObject},
	}, func(c *gin.Context, in args) (any, error) {
		var req cycledomain.CreateCycleRequest
		if err := decodeInto(in.Object(0), &req); err != nil {
			return nil, err
		}
		return s.cycleSvc.Create(c.Request.Context(), req)
	})
	d.register("updateBillingPeriodName", []argSpec{
		{name: "periodNameId", kind: argID},
		{name: "updatedFields", kind: argObject},
	}, func(c *gin.Context, in args) (any, error) {
		var req cycledomain.UpdateCycleRequest
		if err := decodeInto(in.Object(1), &req); err != nil {
			return nil, err
		}
		return s.cycleSvc.Update(c.Request.Context(), in.ID(0), req)
	})
	d.register("deleteBillingPeriodName", []argSpec{
		{name: "periodNameId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.cycleSvc.Delete(c.Request.Context(), in.ID(0))
	})
	d.register("getBillingPeriodNames", nil, func(c *gin.Context, in args) (any, error) {
		return s.cycleSvc.List(c.Request.Context())
	})

	// contracts
	d.register("createBillingPeriod", []argSpec{
		{name: "billingPeriod", kind: argObject},
		{name: "periodNameId", kind: argID},
		{name: "roomId", kind: argID},
		{name: "tenantId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		var req contractdomain.CreateContractRequest
		if err := decodeInto(in.Object(0), &req); err != nil {
			return nil, err
		}
		req.CycleID = in.ID(1)
		req.RoomID = in.ID(2)
		req.TenantID = in.ID(3)
		return s.contractSvc.Create(c.Request.Context(), req)
	})
	d.register("updateBillingPeriod", []argSpec{
		{name: "periodId", kind: argID},
		{name: "updatedFields", kind: argObject},
	}, func(c *gin.Context, in args) (any, error) {
		var req contractdomain.UpdateContractRequest
		if err := decodeInto(in.Object(1), &req); err != nil {
			return nil, err
		}
		return s.contractSvc.Update(c.Request.Context(), in.ID(0), req)
	})
	d.register("deleteBillingPeriod", []argSpec{
		{name: "periodId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.contractSvc.Delete(c.Request.Context(), in.ID(0))
	})
	d.register("getBillingPeriodById", []argSpec{
		{name: "periodId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.contractSvc.Get(c.Request.Context(), in.ID(0))
	})
	d.register("getBillingPeriodBeingPaidFor", []argSpec{
		{name: "tenantId", kind: argID},
		{name: "periodNameId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.contractSvc.CycleBoundForTenant(c.Request.Context(), in.ID(0), in.ID(1))
	})
	d.register("getMonthliesFor", []argSpec{
		{name: "tenantId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.contractSvc.RollingForTenant(c.Request.Context(), in.ID(0))
	})

	// payments
	d.register("createTransaction", []argSpec{
		{name: "transaction", kind: argObject},
		{name: "periodId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		var req paymentdomain.CreatePaymentRequest
		if err := decodeInto(in.Object(0), &req); err != nil {
			return nil, err
		}
		req.ContractID = in.ID(1)
		return s.paymentSvc.Create(c.Request.Context(), req)
	})
	d.register("updateTransaction", []argSpec{
		{name: "transactionId", kind: argID},
		{name: "updatedFields", kind: argObject},
	}, func(c *gin.Context, in args) (any, error) {
		var req paymentdomain.UpdatePaymentRequest
		if err := decodeInto(in.Object(1), &req); err != nil {
			return nil, err
		}
		return s.paymentSvc.Update(c.Request.Context(), in.ID(0), req)
	})
	d.register("deleteTransaction", []argSpec{
		{name: "transactionId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.paymentSvc.Delete(c.Request.Context(), in.ID(0))
	})
	d.register("getTransactionById", []argSpec{
		{name: "transactionId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.paymentSvc.Get(c.Request.Context(), in.ID(0))
	})
	d.register("getTransactions", []argSpec{
		{name: "periodId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.paymentSvc.ListByContract(c.Request.Context(), in.ID(0))
	})
	d.register("getMostRecentTransaction", []argSpec{
		{name: "periodId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.paymentSvc.MostRecent(c.Request.Context(), in.ID(0))
	})
	d.register("getTransactionsByBillingPeriodName", []argSpec{
		{name: "periodNameId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.paymentSvc.ListByCycle(c.Request.Context(), in.ID(0))
	})

	// expenses
	d.register("createMiscExpense", []argSpec{
		{name: "expense", kind: argObject},
		{name: "operator", kind: argID},
		{name: "periodNameId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		var req expensedomain.CreateExpenseRequest
		if err := decodeInto(in.Object(0), &req); err != nil {
			return nil, err
		}
		req.RecordedBy = in.ID(1)
		req.CycleID = in.ID(2)
		return s.expenseSvc.Create(c.Request.Context(), req)
	})
	d.register("updateMiscExpense", []argSpec{
		{name: "expenseId", kind: argID},
		{name: "updatedFields", kind: argObject},
	}, func(c *gin.Context, in args) (any, error) {
		var req expensedomain.UpdateExpenseRequest
		if err := decodeInto(in.Object(1), &req); err != nil {
			return nil, err
		}
		return s.expenseSvc.Update(c.Request.Context(), in.ID(0), req)
	})
	d.register("deleteMiscExpense", []argSpec{
		{name: "expenseId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.expenseSvc.Delete(c.Request.Context(), in.ID(0))
	})
	d.register("getMiscExpenseById", []argSpec{
		{name: "expenseId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.expenseSvc.Get(c.Request.Context(), in.ID(0))
	})
	d.register("getMiscExpensesForBillingPeriodName", []argSpec{
		{name: "periodNameId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.expenseSvc.ListByCycle(c.Request.Context(), in.ID(0))
	})
	d.register("getMiscExpensesByDate", []argSpec{
		{name: "startDate", kind: argDate},
		{name: "endDate", kind: argDate, optional: true},
	}, func(c *gin.Context, in args) (any, error) {
		var to *time.Time
		if in.Has(1) {
			end := in.Date(1)
			to = &end
		}
		return s.expenseSvc.ListByDateRange(c.Request.Context(), in.Date(0), to)
	})

	// ledger
	d.register("getOutstandingBalance", []argSpec{
		{name: "periodId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.ledgerSvc.OutstandingBalance(c.Request.Context(), in.ID(0))
	})
	d.register("getTransactionsByPeriodNameIdWithMetaData", []argSpec{
		{name: "periodNameId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.ledgerSvc.PaymentsWithRunningBalance(c.Request.Context(), in.ID(0))
	})
	d.register("getOnlyTenantsWithOwingAmt", []argSpec{
		{name: "periodNameId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.ledgerSvc.TenantsWithOwingBalance(c.Request.Context(), in.ID(0))
	})
	d.register("getTenantsPlusOutstandingBalanceAll", []argSpec{
		{name: "periodNameId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.ledgerSvc.TenantsWithBalance(c.Request.Context(), in.ID(0))
	})
	d.register("getTenantsAndOwingAmtByRoom", []argSpec{
		{name: "roomId", kind: argID},
		{name: "periodNameId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.ledgerSvc.TenantsOwingByRoom(c.Request.Context(), in.ID(0), in.ID(1))
	})

	// occupancy
	d.register("getRoomsAndOccupancyByLevel", []argSpec{
		{name: "levelNumber", kind: argInt},
		{name: "periodNameId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.occupancySvc.RoomsByLevel(c.Request.Context(), in.Int(0), in.ID(1))
	})
	d.register("getPotentialTenantRoomsByGender", []argSpec{
		{name: "gender", kind: argString},
		{name: "levelNumber", kind: argInt},
		{name: "periodNameId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.occupancySvc.CandidateRooms(
			c.Request.Context(), tenantdomain.Gender(in.Str(0)), in.Int(1), in.ID(2))
	})

	// periods
	d.register("getOlderTenantsThan", []argSpec{
		{name: "periodNameId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.periodSvc.LapsedTenants(c.Request.Context(), in.ID(0))
	})
	d.register("getTenantsOfBillingPeriodXButNotY", []argSpec{
		{name: "periodNameId1", kind: argID},
		{name: "periodNameId2", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.periodSvc.TenantsInXNotY(c.Request.Context(), in.ID(0), in.ID(1))
	})
	d.register("moveMonthlyBillingPeriods", []argSpec{
		{name: "periodNameId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.periodSvc.Rollover(c.Request.Context(), in.ID(0), s.clock.Today())
	})

	// dashboard
	d.register("dashboardTotals", []argSpec{
		{name: "periodNameId", kind: argID},
	}, func(c *gin.Context, in args) (any, error) {
		return s.dashboardSvc.Summary(c.Request.Context(), in.ID(0))
	})
}
