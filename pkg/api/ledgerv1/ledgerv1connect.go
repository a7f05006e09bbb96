package ledgerv1

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// LedgerServiceName is the fully-qualified name of the LedgerService.
const LedgerServiceName = "splitledger.v1.LedgerService"

// Procedure paths, used both for routing and for interceptor logging.
const (
	LedgerServiceListUsersProcedure     = "/splitledger.v1.LedgerService/ListUsers"
	LedgerServiceAddUserProcedure       = "/splitledger.v1.LedgerService/AddUser"
	LedgerServiceRemoveUserProcedure    = "/splitledger.v1.LedgerService/RemoveUser"
	LedgerServiceListExpensesProcedure  = "/splitledger.v1.LedgerService/ListExpenses"
	LedgerServiceAddExpenseProcedure    = "/splitledger.v1.LedgerService/AddExpense"
	LedgerServiceDeleteExpenseProcedure = "/splitledger.v1.LedgerService/DeleteExpense"
	LedgerServiceGetBalancesProcedure   = "/splitledger.v1.LedgerService/GetBalances"
	LedgerServiceSettleUpProcedure      = "/splitledger.v1.LedgerService/SettleUp"
	LedgerServiceGetSummaryProcedure    = "/splitledger.v1.LedgerService/GetSummary"
	LedgerServiceGetCurrencyProcedure   = "/splitledger.v1.LedgerService/GetCurrency"
	LedgerServiceSetCurrencyProcedure   = "/splitledger.v1.LedgerService/SetCurrency"
)

// LedgerServiceHandler is implemented by the server side of the LedgerService.
type LedgerServiceHandler interface {
	ListUsers(context.Context, *connect.Request[ListUsersRequest]) (*connect.Response[ListUsersResponse], error)
	AddUser(context.Context, *connect.Request[AddUserRequest]) (*connect.Response[AddUserResponse], error)
	RemoveUser(context.Context, *connect.Request[RemoveUserRequest]) (*connect.Response[RemoveUserResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
	AddExpense(context.Context, *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
	GetBalances(context.Context, *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error)
	SettleUp(context.Context, *connect.Request[SettleUpRequest]) (*connect.Response[SettleUpResponse], error)
	GetSummary(context.Context, *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error)
	GetCurrency(context.Context, *connect.Request[GetCurrencyRequest]) (*connect.Response[GetCurrencyResponse], error)
	SetCurrency(context.Context, *connect.Request[SetCurrencyRequest]) (*connect.Response[SetCurrencyResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler for every LedgerService
// procedure. It returns the path prefix to mount the handler on.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	handlers := map[string]http.Handler{
		LedgerServiceListUsersProcedure:     connect.NewUnaryHandler(LedgerServiceListUsersProcedure, svc.ListUsers, opts...),
		LedgerServiceAddUserProcedure:       connect.NewUnaryHandler(LedgerServiceAddUserProcedure, svc.AddUser, opts...),
		LedgerServiceRemoveUserProcedure:    connect.NewUnaryHandler(LedgerServiceRemoveUserProcedure, svc.RemoveUser, opts...),
		LedgerServiceListExpensesProcedure:  connect.NewUnaryHandler(LedgerServiceListExpensesProcedure, svc.ListExpenses, opts...),
		LedgerServiceAddExpenseProcedure:    connect.NewUnaryHandler(LedgerServiceAddExpenseProcedure, svc.AddExpense, opts...),
		LedgerServiceDeleteExpenseProcedure: connect.NewUnaryHandler(LedgerServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...),
		LedgerServiceGetBalancesProcedure:   connect.NewUnaryHandler(LedgerServiceGetBalancesProcedure, svc.GetBalances, opts...),
		LedgerServiceSettleUpProcedure:      connect.NewUnaryHandler(LedgerServiceSettleUpProcedure, svc.SettleUp, opts...),
		LedgerServiceGetSummaryProcedure:    connect.NewUnaryHandler(LedgerServiceGetSummaryProcedure, svc.GetSummary, opts...),
		LedgerServiceGetCurrencyProcedure:   connect.NewUnaryHandler(LedgerServiceGetCurrencyProcedure, svc.GetCurrency, opts...),
		LedgerServiceSetCurrencyProcedure:   connect.NewUnaryHandler(LedgerServiceSetCurrencyProcedure, svc.SetCurrency, opts...),
	}

	return "/" + LedgerServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// LedgerServiceClient is a typed client for the LedgerService.
type LedgerServiceClient struct {
	listUsers     *connect.Client[ListUsersRequest, ListUsersResponse]
	addUser       *connect.Client[AddUserRequest, AddUserResponse]
	removeUser    *connect.Client[RemoveUserRequest, RemoveUserResponse]
	listExpenses  *connect.Client[ListExpensesRequest, ListExpensesResponse]
	addExpense    *connect.Client[AddExpenseRequest, AddExpenseResponse]
	deleteExpense *connect.Client[DeleteExpenseRequest, DeleteExpenseResponse]
	getBalances   *connect.Client[GetBalancesRequest, GetBalancesResponse]
	settleUp      *connect.Client[SettleUpRequest, SettleUpResponse]
	getSummary    *connect.Client[GetSummaryRequest, GetSummaryResponse]
	getCurrency   *connect.Client[GetCurrencyRequest, GetCurrencyResponse]
	setCurrency   *connect.Client[SetCurrencyRequest, SetCurrencyResponse]
}

// NewLedgerServiceClient creates a client for the LedgerService at baseURL
// (e.g., http://localhost:8080).
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)

	return &LedgerServiceClient{
		listUsers:     connect.NewClient[ListUsersRequest, ListUsersResponse](httpClient, baseURL+LedgerServiceListUsersProcedure, opts...),
		addUser:       connect.NewClient[AddUserRequest, AddUserResponse](httpClient, baseURL+LedgerServiceAddUserProcedure, opts...),
		removeUser:    connect.NewClient[RemoveUserRequest, RemoveUserResponse](httpClient, baseURL+LedgerServiceRemoveUserProcedure, opts...),
		listExpenses:  connect.NewClient[ListExpensesRequest, ListExpensesResponse](httpClient, baseURL+LedgerServiceListExpensesProcedure, opts...),
		addExpense:    connect.NewClient[AddExpenseRequest, AddExpenseResponse](httpClient, baseURL+LedgerServiceAddExpenseProcedure, opts...),
		deleteExpense: connect.NewClient[DeleteExpenseRequest, DeleteExpenseResponse](httpClient, baseURL+LedgerServiceDeleteExpenseProcedure, opts...),
		getBalances:   connect.NewClient[GetBalancesRequest, GetBalancesResponse](httpClient, baseURL+LedgerServiceGetBalancesProcedure, opts...),
		settleUp:      connect.NewClient[SettleUpRequest, SettleUpResponse](httpClient, baseURL+LedgerServiceSettleUpProcedure, opts...),
		getSummary:    connect.NewClient[GetSummaryRequest, GetSummaryResponse](httpClient, baseURL+LedgerServiceGetSummaryProcedure, opts...),
		getCurrency:   connect.NewClient[GetCurrencyRequest, GetCurrencyResponse](httpClient, baseURL+LedgerServiceGetCurrencyProcedure, opts...),
		setCurrency:   connect.NewClient[SetCurrencyRequest, SetCurrencyResponse](httpClient, baseURL+LedgerServiceSetCurrencyProcedure, opts...),
	}
}

// ListUsers calls splitledger.v1.LedgerService.ListUsers.
func (c *LedgerServiceClient) ListUsers(ctx context.Context, req *connect.Request[ListUsersRequest]) (*connect.Response[ListUsersResponse], error) {
	return c.listUsers.CallUnary(ctx, req)
}

// AddUser calls splitledger.v1.LedgerService.AddUser.
func (c *LedgerServiceClient) AddUser(ctx context.Context, req *connect.Request[AddUserRequest]) (*connect.Response[AddUserResponse], error) {
	return c.addUser.CallUnary(ctx, req)
}

// RemoveUser calls splitledger.v1.LedgerService.RemoveUser.
func (c *LedgerServiceClient) RemoveUser(ctx context.Context, req *connect.Request[RemoveUserRequest]) (*connect.Response[RemoveUserResponse], error) {
	return c.removeUser.CallUnary(ctx, req)
}

// ListExpenses calls splitledger.v1.LedgerService.ListExpenses.
func (c *LedgerServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

// AddExpense calls splitledger.v1.LedgerService.AddExpense.
func (c *LedgerServiceClient) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

// DeleteExpense calls splitledger.v1.LedgerService.DeleteExpense.
func (c *LedgerServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

// GetBalances calls splitledger.v1.LedgerService.GetBalances.
func (c *LedgerServiceClient) GetBalances(ctx context.Context, req *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

// SettleUp calls splitledger.v1.LedgerService.SettleUp.
func (c *LedgerServiceClient) SettleUp(ctx context.Context, req *connect.Request[SettleUpRequest]) (*connect.Response[SettleUpResponse], error) {
	return c.settleUp.CallUnary(ctx, req)
}

// GetSummary calls splitledger.v1.LedgerService.GetSummary.
func (c *LedgerServiceClient) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

// GetCurrency calls splitledger.v1.LedgerService.GetCurrency.
func (c *LedgerServiceClient) GetCurrency(ctx context.Context, req *connect.Request[GetCurrencyRequest]) (*connect.Response[GetCurrencyResponse], error) {
	return c.getCurrency.CallUnary(ctx, req)
}

// SetCurrency calls splitledger.v1.LedgerService.SetCurrency.
func (c *LedgerServiceClient) SetCurrency(ctx context.Context, req *connect.Request[SetCurrencyRequest]) (*connect.Response[SetCurrencyResponse], error) {
	return c.setCurrency.CallUnary(ctx, req)
}
