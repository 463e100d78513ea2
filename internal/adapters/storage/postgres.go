package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	journal "github.com/athebyme/gomarket-platform/catalog-admin/internal/infrastructure/postgres"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/tx"
)

var _ journal.Port = (*JournalStorage)(nil)

// JournalStorage журнал массовых правок в PostgreSQL
type JournalStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage создает новый экземпляр JournalStorage
func NewPostgresStorage(ctx context.Context, connectionString string) (*JournalStorage, error) {
	pool, err := pgxpool.New(ctx, connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &JournalStorage{
		pool: pool,
	}, nil
}

func NewPostgresStorageWithPool(ctx context.Context, pool *pgxpool.Pool) (*JournalStorage, error) {
	if pool == nil {
		return nil, errors.New("pool is nil")
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return &JournalStorage{
		pool: pool,
	}, nil
}

// Pool нужен менеджеру транзакций
func (r *JournalStorage) Pool() *pgxpool.Pool {
	return r.pool
}

// Ping проверяет соединение с БД
func (r *JournalStorage) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close закрывает соединение с БД
func (r *JournalStorage) Close() error {
	r.pool.Close()
	return nil
}

type executor interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
	SendBatch(context.Context, *pgx.Batch) pgx.BatchResults
}

// getExecutor возвращает транзакцию из контекста (см. tx.TxManager) или пул
func (r *JournalStorage) getExecutor(ctx context.Context) executor {
	if t, ok := tx.GetTxFromContext(ctx); ok {
		return t
	}
	return r.pool
}

// SaveBatch сохраняет заголовок пакета
func (r *JournalStorage) SaveBatch(ctx context.Context, record *models.BatchRecord) error {
	query := `
		INSERT INTO audit.bulk_edit_batches (id, shop, action, edit, verdict, stats, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`

	edit, err := json.Marshal(record.Edit)
	if err != nil {
		return fmt.Errorf("failed to encode edit: %w", err)
	}
	stats, err := json.Marshal(record.Stats)
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}

	_, err = r.getExecutor(ctx).Exec(ctx, query, record.ID, record.Shop, string(record.Action), edit,
		string(record.Verdict), stats, record.StartedAt, record.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to save batch: %w", err)
	}
	return nil
}

// SaveOutcomes сохраняет результаты по товарам одним pgx.Batch
func (r *JournalStorage) SaveOutcomes(ctx context.Context, batchID string, outcomes []models.ProductOutcome) error {
	if len(outcomes) == 0 {
		return nil
	}

	query := `
		INSERT INTO audit.bulk_edit_outcomes (batch_id, product_id, title, skipped, failed, original, new, errors, variants)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (batch_id, product_id) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, o := range outcomes {
		original, err := json.Marshal(o.Original)
		if err != nil {
			return fmt.Errorf("failed to encode original value: %w", err)
		}
		newValue, err := json.Marshal(o.New)
		if err != nil {
			return fmt.Errorf("failed to encode new value: %w", err)
		}
		fieldErrors, err := json.Marshal(o.Errors)
		if err != nil {
			return fmt.Errorf("failed to encode errors: %w", err)
		}
		variants, err := json.Marshal(o.Variants)
		if err != nil {
			return fmt.Errorf("failed to encode variants: %w", err)
		}

		batch.Queue(query, batchID, o.ProductID, o.Title, o.Skipped, o.Failed(), original, newValue, fieldErrors, variants)
	}

	results := r.getExecutor(ctx).SendBatch(ctx, batch)
	defer results.Close()

	for range outcomes {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to save outcome: %w", err)
		}
	}
	return nil
}

// GetBatch получает пакет вместе с результатами
func (r *JournalStorage) GetBatch(ctx context.Context, shop, batchID string) (*models.BatchRecord, error) {
	executor := r.getExecutor(ctx)

	query := `
		SELECT id::text, shop, action, edit, verdict, stats, started_at, finished_at
		FROM audit.bulk_edit_batches
		WHERE id = $1 AND shop = $2
	`

	record, err := scanBatch(executor.QueryRow(ctx, query, batchID, shop))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: batch %s", models.ErrNotFound, batchID)
		}
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}

	rows, err := executor.Query(ctx, `
		SELECT product_id, title, skipped, original, new, errors, variants
		FROM audit.bulk_edit_outcomes
		WHERE batch_id = $1
		ORDER BY product_id
	`, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get batch outcomes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var o models.ProductOutcome
		var original, newValue, fieldErrs, variants []byte
		if err := rows.Scan(&o.ProductID, &o.Title, &o.Skipped, &original, &newValue, &fieldErrs, &variants); err != nil {
			return nil, fmt.Errorf("failed to scan outcome row: %w", err)
		}
		if err := unmarshalAll(
			jsonField{original, &o.Original},
			jsonField{newValue, &o.New},
			jsonField{fieldErrs, &o.Errors},
			jsonField{variants, &o.Variants},
		); err != nil {
			return nil, err
		}
		record.Results = append(record.Results, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate outcomes: %w", err)
	}

	return record, nil
}

// ListBatches возвращает пакеты магазина с пагинацией
func (r *JournalStorage) ListBatches(ctx context.Context, shop string, page, pageSize int) ([]*models.BatchRecord, int, error) {
	executor := r.getExecutor(ctx)

	var total int
	if err := executor.QueryRow(ctx, `SELECT COUNT(*) FROM audit.bulk_edit_batches WHERE shop = $1`, shop).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count batches: %w", err)
	}

	if total == 0 {
		return []*models.BatchRecord{}, 0, nil
	}

	rows, err := executor.Query(ctx, `
		SELECT id::text, shop, action, edit, verdict, stats, started_at, finished_at
		FROM audit.bulk_edit_batches
		WHERE shop = $1
		ORDER BY finished_at DESC
		LIMIT $2 OFFSET $3
	`, shop, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	var records []*models.BatchRecord
	for rows.Next() {
		record, err := scanBatch(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan batch row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate batches: %w", err)
	}

	return records, total, nil
}

func scanBatch(row pgx.Row) (*models.BatchRecord, error) {
	var (
		record      models.BatchRecord
		action      string
		verdict     string
		edit, stats []byte
	)

	err := row.Scan(&record.ID, &record.Shop, &action, &edit, &verdict, &stats, &record.StartedAt, &record.FinishedAt)
	if err != nil {
		return nil, err
	}
	record.Action = models.Action(action)
	record.Verdict = models.Verdict(verdict)

	if err := unmarshalAll(jsonField{edit, &record.Edit}, jsonField{stats, &record.Stats}); err != nil {
		return nil, err
	}
	return &record, nil
}

type jsonField struct {
	raw []byte
	dst any
}

func unmarshalAll(fields ...jsonField) error {
	for _, f := range fields {
		if len(f.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return fmt.Errorf("failed to decode journal column: %w", err)
		}
	}
	return nil
}
