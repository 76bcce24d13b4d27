package graphql

import (
	"time"

	"github.com/dmitrijs2005/libris/internal/server/models"
)

// Resolvers hand graphql-go plain maps; nested fields read "id", "bookId"
// and "userId" back out of them.

func bookMap(b *models.Book) map[string]any {
	if b == nil {
		return nil
	}
	return map[string]any{
		"id":        b.ID,
		"_id":       b.ID,
		"title":     b.Title,
		"author":    b.Author,
		"isbn":      b.ISBN,
		"status":    string(b.Status),
		"createdAt": b.CreatedAt,
		"updatedAt": b.UpdatedAt,
	}
}

func booksList(list []models.Book) []any {
	out := make([]any, 0, len(list))
	for i := range list {
		out = append(out, bookMap(&list[i]))
	}
	return out
}

func authorMap(a *models.Author) map[string]any {
	if a == nil {
		return nil
	}
	m := map[string]any{
		"id":          a.ID,
		"_id":         a.ID,
		"name":        a.Name,
		"nationality": a.Nationality,
		"birthYear":   nil,
	}
	if a.BirthYear != nil {
		m["birthYear"] = *a.BirthYear
	}
	return m
}

func userMap(u *models.User) map[string]any {
	if u == nil {
		return nil
	}
	return map[string]any{
		"id":             u.ID,
		"_id":            u.ID,
		"name":           u.Name,
		"email":          u.Email,
		"status":         string(u.Status),
		"membershipDate": u.MembershipDate,
	}
}

func borrowingMap(b *models.Borrowing, now time.Time) map[string]any {
	if b == nil {
		return nil
	}
	m := map[string]any{
		"id":              b.ID,
		"_id":             b.ID,
		"bookId":          b.BookID,
		"userId":          b.UserID,
		"borrowDate":      b.BorrowDate,
		"dueDate":         b.DueDate,
		"returnDate":      nil,
		"status":          string(b.Status),
		"effectiveStatus": string(b.EffectiveStatus(now)),
	}
	if b.ReturnDate != nil {
		m["returnDate"] = *b.ReturnDate
	}
	return m
}

func borrowingsList(list []models.Borrowing, now time.Time) []any {
	out := make([]any, 0, len(list))
	for i := range list {
		out = append(out, borrowingMap(&list[i], now))
	}
	return out
}

func str(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func optStr(args map[string]any, key string) *string {
	s, ok := args[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func num(args map[string]any, key string) int {
	n, _ := args[key].(int)
	return n
}

func sourceID(src any, key string) string {
	m, _ := src.(map[string]any)
	s, _ := m[key].(string)
	return s
}
