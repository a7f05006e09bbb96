package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

var whitespace = regexp.MustCompile(`\s+`)

// defaultEmail derives a placeholder address for members added without one.
func defaultEmail(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(name), ".") + "@example.com"
}

// AddUser adds a member to the group.
func (l *Ledger) AddUser(ctx context.Context, name, email string) (models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.User{}, ErrInvalidName
	}
	email = strings.TrimSpace(email)
	if email == "" {
		email = defaultEmail(name)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, u := range l.users {
		if strings.EqualFold(u.Email, email) {
			return models.User{}, fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
		}
	}

	user := models.User{ID: l.newID(), Name: name, Email: email}
	users := append(slices.Clone(l.users), user)
	if err := l.saveUsers(ctx, users); err != nil {
		return models.User{}, err
	}

	slog.Info("User added", "user_id", user.ID, "name", user.Name)
	return user, nil
}

// RemoveUser deletes a member who has no expense history.
// The group never shrinks below two members.
func (l *Ledger) RemoveUser(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.userIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	if len(l.users) <= minUsers {
		return ErrTooFewUsers
	}
	for _, e := range l.expenses {
		if e.Involves(id) {
			return ErrUserInUse
		}
	}

	users := slices.Delete(slices.Clone(l.users), i, i+1)
	if err := l.saveUsers(ctx, users); err != nil {
		return err
	}

	slog.Info("User removed", "user_id", id)
	return nil
}

// saveUsers persists users and swaps them in. Callers hold mu.
func (l *Ledger) saveUsers(ctx context.Context, users []models.User) error {
	if err := l.store.Save(ctx, storage.KeyUsers, users); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}
	l.users = users
	l.recompute()
	return nil
}
