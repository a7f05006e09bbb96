package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/currency"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/models"
	pb "github.com/mmynk/splitledger/pkg/api/ledgerv1"
)

// Ensure LedgerService implements the Connect handler interface
var _ pb.LedgerServiceHandler = (*LedgerService)(nil)

// LedgerService implements the Connect LedgerService on top of a ledger.
type LedgerService struct {
	ledger *ledger.Ledger
}

// NewLedgerService creates a new LedgerService backed by l.
func NewLedgerService(l *ledger.Ledger) *LedgerService {
	return &LedgerService{ledger: l}
}

// ListUsers returns every group member.
func (s *LedgerService) ListUsers(ctx context.Context, req *connect.Request[pb.ListUsersRequest]) (*connect.Response[pb.ListUsersResponse], error) {
	users := s.ledger.Users()
	resp := &pb.ListUsersResponse{Users: make([]pb.User, len(users))}
	for i, u := range users {
		resp.Users[i] = toProtoUser(u)
	}
	return connect.NewResponse(resp), nil
}

// AddUser adds a member to the group.
func (s *LedgerService) AddUser(ctx context.Context, req *connect.Request[pb.AddUserRequest]) (*connect.Response[pb.AddUserResponse], error) {
	slog.Info("AddUser request received", "name", req.Msg.Name)

	user, err := s.ledger.AddUser(ctx, req.Msg.Name, req.Msg.Email)
	if err != nil {
		slog.Error("AddUser failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&pb.AddUserResponse{User: toProtoUser(user)}), nil
}

// RemoveUser removes a member without expense history.
func (s *LedgerService) RemoveUser(ctx context.Context, req *connect.Request[pb.RemoveUserRequest]) (*connect.Response[pb.RemoveUserResponse], error) {
	slog.Info("RemoveUser request received", "user_id", req.Msg.UserID)

	if err := s.ledger.RemoveUser(ctx, req.Msg.UserID); err != nil {
		slog.Error("RemoveUser failed", "user_id", req.Msg.UserID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&pb.RemoveUserResponse{}), nil
}

// ListExpenses returns expenses filtered and sorted as requested.
func (s *LedgerService) ListExpenses(ctx context.Context, req *connect.Request[pb.ListExpensesRequest]) (*connect.Response[pb.ListExpensesResponse], error) {
	var sortBy ledger.SortField
	switch req.Msg.SortBy {
	case "", string(ledger.SortByDate):
		sortBy = ledger.SortByDate
	case string(ledger.SortByAmount):
		sortBy = ledger.SortByAmount
	default:
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("sortBy must be date or amount"))
	}

	expenses := s.ledger.Expenses(ledger.ExpenseQuery{
		Search:    req.Msg.Search,
		SortBy:    sortBy,
		Ascending: req.Msg.Ascending,
	})

	resp := &pb.ListExpensesResponse{Expenses: make([]pb.Expense, len(expenses))}
	for i, e := range expenses {
		resp.Expenses[i] = toProtoExpense(e)
	}
	return connect.NewResponse(resp), nil
}

// AddExpense records a regular expense.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[pb.AddExpenseRequest]) (*connect.Response[pb.AddExpenseResponse], error) {
	slog.Info("AddExpense request received",
		"description", req.Msg.Description,
		"amount", req.Msg.Amount,
		"paid_by", req.Msg.PaidBy,
		"participants_count", len(req.Msg.Participants),
		"split", req.Msg.Split,
	)

	in := ledger.NewExpense{
		Description:  req.Msg.Description,
		Amount:       req.Msg.Amount,
		PaidBy:       req.Msg.PaidBy,
		Participants: req.Msg.Participants,
		Split:        ledger.SplitKind(req.Msg.Split),
		Shares:       req.Msg.Shares,
		Category:     req.Msg.Category,
	}
	if req.Msg.Date != nil {
		in.Date = *req.Msg.Date
	}

	expense, err := s.ledger.AddExpense(ctx, in)
	if err != nil {
		slog.Error("AddExpense failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&pb.AddExpenseResponse{Expense: toProtoExpense(expense)}), nil
}

// DeleteExpense removes an expense or settlement.
func (s *LedgerService) DeleteExpense(ctx context.Context, req *connect.Request[pb.DeleteExpenseRequest]) (*connect.Response[pb.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received", "expense_id", req.Msg.ExpenseID)

	if err := s.ledger.DeleteExpense(ctx, req.Msg.ExpenseID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&pb.DeleteExpenseResponse{}), nil
}

// GetBalances returns the simplified debts between members.
func (s *LedgerService) GetBalances(ctx context.Context, req *connect.Request[pb.GetBalancesRequest]) (*connect.Response[pb.GetBalancesResponse], error) {
	cur := s.ledger.Currency()
	balances := s.ledger.Balances()

	slog.Info("GetBalances successful", "balances_count", len(balances), "currency", cur.Code)

	return connect.NewResponse(&pb.GetBalancesResponse{
		Balances: toProtoBalances(balances, cur),
		Currency: toProtoCurrency(cur),
	}), nil
}

// SettleUp records a payment that reduces an outstanding balance.
func (s *LedgerService) SettleUp(ctx context.Context, req *connect.Request[pb.SettleUpRequest]) (*connect.Response[pb.SettleUpResponse], error) {
	slog.Info("SettleUp request received",
		"from", req.Msg.FromUserID,
		"to", req.Msg.ToUserID,
		"amount", req.Msg.Amount,
	)

	settlement, err := s.ledger.SettleUp(ctx, req.Msg.FromUserID, req.Msg.ToUserID, req.Msg.Amount)
	if err != nil {
		slog.Error("SettleUp failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&pb.SettleUpResponse{Settlement: toProtoExpense(settlement)}), nil
}

// GetSummary reports group spending and one member's net position.
func (s *LedgerService) GetSummary(ctx context.Context, req *connect.Request[pb.GetSummaryRequest]) (*connect.Response[pb.GetSummaryResponse], error) {
	summary, err := s.ledger.Summary(req.Msg.UserID)
	if err != nil {
		slog.Error("GetSummary failed", "user_id", req.Msg.UserID, "error", err)
		return nil, toConnectError(err)
	}

	cur := s.ledger.Currency()
	return connect.NewResponse(&pb.GetSummaryResponse{
		TotalExpenses:        summary.TotalExpenses,
		TotalExpensesDisplay: cur.Format(summary.TotalExpenses),
		NetPosition:          summary.NetPosition,
		NetPositionDisplay:   cur.Format(summary.NetPosition),
		Owes:                 toProtoBalances(summary.Owes, cur),
		OwedBy:               toProtoBalances(summary.OwedBy, cur),
	}), nil
}

// GetCurrency returns the selected display currency and the alternatives.
func (s *LedgerService) GetCurrency(ctx context.Context, req *connect.Request[pb.GetCurrencyRequest]) (*connect.Response[pb.GetCurrencyResponse], error) {
	supported := currency.Supported()
	resp := &pb.GetCurrencyResponse{
		Currency:  toProtoCurrency(s.ledger.Currency()),
		Supported: make([]pb.Currency, len(supported)),
	}
	for i, c := range supported {
		resp.Supported[i] = toProtoCurrency(c)
	}
	return connect.NewResponse(resp), nil
}

// SetCurrency changes the display currency.
func (s *LedgerService) SetCurrency(ctx context.Context, req *connect.Request[pb.SetCurrencyRequest]) (*connect.Response[pb.SetCurrencyResponse], error) {
	slog.Info("SetCurrency request received", "code", req.Msg.Code)

	cur, err := s.ledger.SetCurrency(ctx, req.Msg.Code)
	if err != nil {
		slog.Error("SetCurrency failed", "code", req.Msg.Code, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&pb.SetCurrencyResponse{Currency: toProtoCurrency(cur)}), nil
}

// toConnectError maps ledger errors onto Connect status codes.
func toConnectError(err error) *connect.Error {
	switch {
	case errors.Is(err, ledger.ErrUserNotFound),
		errors.Is(err, ledger.ErrExpenseNotFound),
		errors.Is(err, ledger.ErrNoSuchBalance):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ledger.ErrTooFewUsers),
		errors.Is(err, ledger.ErrUserInUse):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, ledger.ErrDuplicateEmail):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, ledger.ErrInvalidName),
		errors.Is(err, ledger.ErrInvalidDescription),
		errors.Is(err, ledger.ErrUnknownSplit),
		errors.Is(err, ledger.ErrSettlementExceedsDebt),
		errors.Is(err, ledger.ErrSelfSettlement),
		errors.Is(err, calculator.ErrInvalidAmount),
		errors.Is(err, calculator.ErrNoParticipants),
		errors.Is(err, calculator.ErrMissingShare),
		errors.Is(err, calculator.ErrNegativeShare),
		errors.Is(err, calculator.ErrShareMismatch),
		errors.Is(err, currency.ErrUnknownCurrency):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func toProtoUser(u models.User) pb.User {
	return pb.User{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toProtoExpense(e models.Expense) pb.Expense {
	participants := make([]pb.Participant, len(e.Participants))
	for i, p := range e.Participants {
		participants[i] = pb.Participant{UserID: p.UserID, Share: p.Share}
	}
	return pb.Expense{
		ID:           e.ID,
		Description:  e.Description,
		Amount:       e.Amount,
		Date:         e.Date,
		PaidBy:       e.PaidBy,
		Participants: participants,
		Type:         e.Type.String(),
		Category:     e.Category,
	}
}

func toProtoBalances(balances []models.Balance, cur currency.Currency) []pb.Balance {
	result := make([]pb.Balance, len(balances))
	for i, b := range balances {
		result[i] = pb.Balance{
			From:    b.From,
			To:      b.To,
			Amount:  b.Amount,
			Display: cur.Format(b.Amount),
		}
	}
	return result
}

func toProtoCurrency(c currency.Currency) pb.Currency {
	return pb.Currency{Code: c.Code, Name: c.Name, Symbol: c.Symbol, Rate: c.Rate}
}
