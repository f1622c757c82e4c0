package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"salesdesk/internal/core/apperror"
	"salesdesk/internal/core/id"
	"salesdesk/internal/domain"
	"salesdesk/internal/domain/documents/priceddoc"
	"salesdesk/internal/infrastructure/storage/postgres"
)

const (
	pricedDocTable      = "doc_priced_documents"
	pricedDocItemsTable = "doc_priced_document_items"
)

var pricedDocItemCols = []string{
	"line_id", "document_id", "line_no", "product_reference", "name", "description",
	"quantity", "unit_price", "amount", "discount", "tax", "total",
}

// PricedDocumentRepo is the PostgreSQL repository for invoices and sales orders.
// Both kinds share one table discriminated by the kind column.
type PricedDocumentRepo struct {
	*BaseDocumentRepo[*priceddoc.PricedDocument]
	batch *postgres.BatchInserter
}

// copyThreshold is the line count above which item inserts switch to
// the COPY protocol.
const copyThreshold = 50

// NewPricedDocumentRepo creates a new priced document repository.
func NewPricedDocumentRepo(txm *postgres.TxManager) *PricedDocumentRepo {
	return &PricedDocumentRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txm,
			pricedDocTable,
			postgres.ExtractDBColumns[priceddoc.PricedDocument](),
			func() *priceddoc.PricedDocument { return &priceddoc.PricedDocument{} },
		),
		batch: postgres.NewBatchInserter(txm),
	}
}

// GetByNumber retrieves a document by its kind and assigned number.
func (r *PricedDocumentRepo) GetByNumber(ctx context.Context, kind priceddoc.Kind, number string) (*priceddoc.PricedDocument, error) {
	doc := &priceddoc.PricedDocument{}
	q := r.baseSelect().
		Where(squirrel.Eq{"kind": kind}).
		Where(squirrel.Eq{"document_number": number})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.Querier(ctx), doc, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(kind.EntityName(), number)
		}
		return nil, fmt.Errorf("get by number: %w", err)
	}

	return doc, nil
}

// CountByKind returns the total number of documents of the given kind,
// including soft-deleted ones. Used as the numbering sequence source.
func (r *PricedDocumentRepo) CountByKind(ctx context.Context, kind priceddoc.Kind) (int64, error) {
	q := r.Builder().
		Select("COUNT(*)").
		From(pricedDocTable).
		Where(squirrel.Eq{"kind": kind})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var count int64
	if err := r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s documents: %w", kind, err)
	}

	return count, nil
}

// GetItems loads line items ordered by line number.
func (r *PricedDocumentRepo) GetItems(ctx context.Context, documentID id.ID) ([]priceddoc.Item, error) {
	q := r.Builder().
		Select(pricedDocItemCols...).
		From(pricedDocItemsTable).
		Where(squirrel.Eq{"document_id": documentID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []itemRow
	if err := pgxscan.Select(ctx, r.Querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}

	items := make([]priceddoc.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.Item)
	}

	return items, nil
}

// SaveItems replaces all line items of a document. Must run inside a
// transaction together with the document write.
func (r *PricedDocumentRepo) SaveItems(ctx context.Context, documentID id.ID, items []priceddoc.Item) error {
	querier := r.Querier(ctx)

	delQ := r.Builder().
		Delete(pricedDocItemsTable).
		Where(squirrel.Eq{"document_id": documentID})

	sql, args, err := delQ.ToSql()
	if err != nil {
		return fmt.Errorf("build delete items: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete items: %w", err)
	}

	if len(items) == 0 {
		return nil
	}

	// Large documents go through the COPY protocol
	if len(items) >= copyThreshold {
		rows := make([][]any, len(items))
		for i, item := range items {
			rows[i] = []any{
				item.LineID, documentID, item.LineNo, item.ProductReference, item.Name, item.Description,
				item.Quantity, item.UnitPrice, item.Amount, item.Discount, item.Tax, item.Total,
			}
		}
		if _, err := r.batch.CopyFromSlice(ctx, pricedDocItemsTable, pricedDocItemCols, rows); err != nil {
			return fmt.Errorf("copy items: %w", err)
		}
		return nil
	}

	insQ := r.Builder().
		Insert(pricedDocItemsTable).
		Columns(pricedDocItemCols...)

	for _, item := range items {
		insQ = insQ.Values(
			item.LineID,
			documentID,
			item.LineNo,
			item.ProductReference,
			item.Name,
			item.Description,
			item.Quantity,
			item.UnitPrice,
			item.Amount,
			item.Discount,
			item.Tax,
			item.Total,
		)
	}

	sql, args, err = insQ.ToSql()
	if err != nil {
		return fmt.Errorf("build insert items: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert items: %w", err)
	}

	return nil
}

// Delete removes a document and its line items permanently.
func (r *PricedDocumentRepo) Delete(ctx context.Context, documentID id.ID) error {
	delItems := r.Builder().
		Delete(pricedDocItemsTable).
		Where(squirrel.Eq{"document_id": documentID})

	sql, args, err := delItems.ToSql()
	if err != nil {
		return fmt.Errorf("build delete items: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete items: %w", err)
	}

	return r.BaseDocumentRepo.Delete(ctx, documentID)
}

// List retrieves documents matching the priced document filter.
func (r *PricedDocumentRepo) List(ctx context.Context, filter priceddoc.ListFilter) (domain.ListResult[*priceddoc.PricedDocument], error) {
	result := domain.ListResult[*priceddoc.PricedDocument]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if filter.Kind != nil {
		q = q.Where(squirrel.Eq{"kind": *filter.Kind})
	}
	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.AccountID != nil {
		q = q.Where(squirrel.Eq{"account_id": *filter.AccountID})
	}
	if filter.ContactID != nil {
		q = q.Where(squirrel.Eq{"contact_id": *filter.ContactID})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}
	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}
	if filter.Search != "" {
		q = q.Where(squirrel.Or{
			squirrel.ILike{"document_number": "%" + filter.Search + "%"},
			squirrel.ILike{"subject": "%" + filter.Search + "%"},
			squirrel.ILike{"comment": "%" + filter.Search + "%"},
		})
	}
	if len(filter.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": filter.IDs})
	}

	countQ := r.Builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.Querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list priced documents: %w", err)
	}

	return result, nil
}

// itemRow carries the document_id join column alongside the line fields.
type itemRow struct {
	priceddoc.Item
	DocumentID id.ID `db:"document_id"`
}
