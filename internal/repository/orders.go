package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/siteflow/orderbot/internal/domain"
)

// OrderRepository persists orders and their material lines in Postgres.
type OrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{db: db}
}

// SaveOrder inserts the order and its materials in one transaction. The
// order's ID and CreatedAt are assigned here.
func (r *OrderRepository) SaveOrder(ctx context.Context, order *domain.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	order.CreatedAt = time.Now().UTC()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, phone_number, site, delivery_date, delivery_time, status, completeness, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		order.ID,
		order.Sender,
		order.Site,
		order.DeliveryDate,
		order.DeliveryTime,
		string(order.Status),
		decimal.NewFromFloat(order.Completeness),
		order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i, m := range order.Materials {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_materials (order_id, position, name, quantity, unit)
			VALUES ($1, $2, $3, $4, $5)`,
			order.ID, i, m.Name, m.Quantity, m.Unit,
		)
		if err != nil {
			return fmt.Errorf("insert material %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// OrdersBySite returns the orders destined for a site, newest first,
// materials in insertion order.
func (r *OrderRepository) OrdersBySite(ctx context.Context, site string) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, phone_number, site, delivery_date, delivery_time, status, completeness, created_at
		FROM orders
		WHERE site = $1
		ORDER BY created_at DESC`,
		site,
	)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var status string
		var completeness decimal.Decimal
		if err := rows.Scan(&o.ID, &o.Sender, &o.Site, &o.DeliveryDate, &o.DeliveryTime, &status, &completeness, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Status = domain.OrderStatus(status)
		o.Completeness = completeness.InexactFloat64()
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	for i := range orders {
		materials, err := r.orderMaterials(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Materials = materials
	}
	return orders, nil
}

func (r *OrderRepository) orderMaterials(ctx context.Context, orderID string) ([]domain.Material, error) {
	rows, err := r.db.Query(ctx, `
		SELECT name, quantity, unit
		FROM order_materials
		WHERE order_id = $1
		ORDER BY position`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("query materials: %w", err)
	}
	defer rows.Close()

	var materials []domain.Material
	for rows.Next() {
		var m domain.Material
		if err := rows.Scan(&m.Name, &m.Quantity, &m.Unit); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate materials: %w", err)
	}
	return materials, nil
}

// ListSites returns the distinct site names that have stored orders.
func (r *OrderRepository) ListSites(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT site FROM orders ORDER BY site`)
	if err != nil {
		return nil, fmt.Errorf("query sites: %w", err)
	}
	defer rows.Close()

	sites, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect sites: %w", err)
	}
	return sites, nil
}
