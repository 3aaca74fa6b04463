package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"stepik_backend/internal/common"
	"stepik_backend/internal/domain/model"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func expectOneRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// conditions accumulates WHERE clauses with positional arguments.
type conditions struct {
	parts []string
	args  []interface{}
}

// add appends expr, replacing every "?" with the next placeholder.
func (c *conditions) add(expr string, arg interface{}) {
	c.args = append(c.args, arg)
	c.parts = append(c.parts, strings.ReplaceAll(expr, "?", fmt.Sprintf("$%d", len(c.args))))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s literally anywhere in the value.
// Use with ESCAPE '\'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (c *conditions) visible(vis model.Visibility, column string) {
	if vis == model.ActiveOnly {
		c.parts = append(c.parts, column+" = TRUE")
	}
}

func (c *conditions) where() string {
	if len(c.parts) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.parts, " AND ")
}

func (c *conditions) next() int {
	return len(c.args) + 1
}

// limitArg maps a non-positive limit to NULL, which PostgreSQL treats as no limit.
func limitArg(limit int) interface{} {
	if limit <= 0 {
		return nil
	}
	return limit
}
