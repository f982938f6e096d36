package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/allocation-ledger/internal/config"
	"github.com/MKhiriev/allocation-ledger/models"
)

const (
	clientsTable     = "clients"
	allocationsTable = "allocations"

	allocationCountColumn = "(SELECT COUNT(*) FROM allocations a WHERE a.client_id = c.id) AS allocation_count"
)

var (
	clientRecordColumns = []string{"c.id", "c.name", "c.email", "c.phone", "c.status", allocationCountColumn}
	allocationColumns   = []string{"id", "client_id", "asset_code", "encrypted_amount"}
)

const (
	clientReturningClause = "RETURNING id, name, email, phone, status"
	allocationReturning   = "RETURNING id, client_id, asset_code, encrypted_amount"
)

// queries renders the ledger statements for one SQL dialect.
type queries struct {
	sb sq.StatementBuilderType
	// lockRows adds FOR UPDATE to the merge read. SQLite has no row locks and
	// relies on BEGIN IMMEDIATE instead.
	lockRows bool
}

func newQueries(driver string) queries {
	if driver == config.DriverSQLite {
		return queries{sb: sq.StatementBuilder.PlaceholderFormat(sq.Question)}
	}

	return queries{sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar), lockRows: true}
}

// likeEscaper makes user input match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPredicate matches column values holding term as a literal substring.
func containsPredicate(column, term string) sq.Sqlizer {
	return sq.Expr(column+` LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(term)+"%")
}

// clientFilterPredicates translates the optional criteria of filter into
// WHERE predicates. Name and e-mail match as substrings.
func clientFilterPredicates(filter models.ClientFilter) []sq.Sqlizer {
	predicates := make([]sq.Sqlizer, 0, 3)

	if filter.Name != nil && *filter.Name != "" {
		predicates = append(predicates, containsPredicate("c.name", *filter.Name))
	}
	if filter.Email != nil && *filter.Email != "" {
		predicates = append(predicates, containsPredicate("c.email", *filter.Email))
	}
	if filter.Status != nil {
		predicates = append(predicates, sq.Eq{"c.status": *filter.Status})
	}

	return predicates
}

func (q queries) buildCreateClientQuery(client models.Client) (string, []any, error) {
	return q.sb.Insert(clientsTable).
		Columns("name", "email", "phone", "status").
		Values(client.Name, client.Email, client.Phone, client.Status).
		Suffix("RETURNING id").
		ToSql()
}

func (q queries) buildGetClientQuery(id int64) (string, []any, error) {
	return q.sb.Select(clientRecordColumns...).
		From(clientsTable + " c").
		Where(sq.Eq{"c.id": id}).
		ToSql()
}

func (q queries) buildListClientsQuery(filter models.ClientFilter) (string, []any, error) {
	query := q.sb.Select(clientRecordColumns...).From(clientsTable + " c")
	for _, p := range clientFilterPredicates(filter) {
		query = query.Where(p)
	}
	query = query.OrderBy("c.id DESC")

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset())
	}

	return query.ToSql()
}

func (q queries) buildCountClientsQuery(filter models.ClientFilter) (string, []any, error) {
	query := q.sb.Select("COUNT(*)").From(clientsTable + " c")
	for _, p := range clientFilterPredicates(filter) {
		query = query.Where(p)
	}

	return query.ToSql()
}

func (q queries) buildUpdateClientQuery(update models.ClientUpdate) (string, []any, error) {
	query := q.sb.Update(clientsTable)

	if update.Name != nil {
		query = query.Set("name", *update.Name)
	}
	if update.Email != nil {
		query = query.Set("email", *update.Email)
	}
	if update.Phone != nil {
		query = query.Set("phone", *update.Phone)
	}
	if update.Status != nil {
		query = query.Set("status", *update.Status)
	}

	return query.Where(sq.Eq{"id": update.ID}).Suffix(clientReturningClause).ToSql()
}

func (q queries) buildDeleteClientQuery(id int64) (string, []any, error) {
	return q.sb.Delete(clientsTable).Where(sq.Eq{"id": id}).ToSql()
}

func (q queries) buildSelectAllocationForMergeQuery(clientID int64, assetCode string) (string, []any, error) {
	query := q.sb.Select(allocationColumns...).
		From(allocationsTable).
		Where(sq.Eq{"client_id": clientID}).
		Where(sq.Eq{"asset_code": assetCode})

	if q.lockRows {
		query = query.Suffix("FOR UPDATE")
	}

	return query.ToSql()
}

func (q queries) buildInsertAllocationQuery(clientID int64, assetCode, token string) (string, []any, error) {
	return q.sb.Insert(allocationsTable).
		Columns("client_id", "asset_code", "encrypted_amount").
		Values(clientID, assetCode, token).
		Suffix("RETURNING id").
		ToSql()
}

func (q queries) buildUpdateAllocationAmountQuery(id int64, token string) (string, []any, error) {
	return q.sb.Update(allocationsTable).
		Set("encrypted_amount", token).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func (q queries) buildUpdateAllocationQuery(update models.AllocationUpdate) (string, []any, error) {
	query := q.sb.Update(allocationsTable)

	if update.AssetCode != nil {
		query = query.Set("asset_code", *update.AssetCode)
	}
	if update.EncryptedAmount != nil {
		query = query.Set("encrypted_amount", *update.EncryptedAmount)
	}

	return query.Where(sq.Eq{"id": update.ID}).Suffix(allocationReturning).ToSql()
}

func (q queries) buildDeleteAllocationQuery(id int64) (string, []any, error) {
	return q.sb.Delete(allocationsTable).Where(sq.Eq{"id": id}).ToSql()
}

func (q queries) buildListAllocationsQuery(clientID int64) (string, []any, error) {
	return q.sb.Select(allocationColumns...).
		From(allocationsTable).
		Where(sq.Eq{"client_id": clientID}).
		OrderBy("id ASC").
		ToSql()
}

func (q queries) buildCountAllocationsQuery(clientID int64) (string, []any, error) {
	return q.sb.Select("COUNT(*)").
		From(allocationsTable).
		Where(sq.Eq{"client_id": clientID}).
		ToSql()
}
