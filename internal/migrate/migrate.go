package migrate

import (
	"context"
	"fmt"
	"strings"

	"checkout-service/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool // pgcrypto, pg_trgm
	CreateChecks           bool // CHECK-ограничения
	CreateIndexes          bool // дополнительные индексы
	CreateFKsViaSQL        bool // FK через SQL поверх GORM-constraint
	CreateUpdatedAtTrigger bool // триггеры updated_at
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateFKsViaSQL:        true,
		CreateUpdatedAtTrigger: true,
	}
}

type step struct {
	name string
	sql  string
}

var extensions = []step{
	{"pgcrypto", `CREATE EXTENSION IF NOT EXISTS pgcrypto`},
	{"pg_trgm", `CREATE EXTENSION IF NOT EXISTS pg_trgm`},
}

// tables carrying an updated_at column maintained by trigger
var touchedTables = []string{"products", "carts", "cart_items", "orders", "order_items", "refunds"}

var checks = []step{
	{"chk_products_stock_non_negative", `
ALTER TABLE products DROP CONSTRAINT IF EXISTS chk_products_stock_non_negative;
ALTER TABLE products ADD CONSTRAINT chk_products_stock_non_negative CHECK (stock >= 0);`},
	{"chk_products_prices_non_negative", `
ALTER TABLE products DROP CONSTRAINT IF EXISTS chk_products_prices_non_negative;
ALTER TABLE products ADD CONSTRAINT chk_products_prices_non_negative
  CHECK (price >= 0 AND (discount_price IS NULL OR discount_price >= 0));`},
	{"chk_products_tax_percent_range", `
ALTER TABLE products DROP CONSTRAINT IF EXISTS chk_products_tax_percent_range;
ALTER TABLE products ADD CONSTRAINT chk_products_tax_percent_range CHECK (tax_percent BETWEEN 0 AND 100);`},
	{"chk_cart_items_quantity_positive", `
ALTER TABLE cart_items DROP CONSTRAINT IF EXISTS chk_cart_items_quantity_positive;
ALTER TABLE cart_items ADD CONSTRAINT chk_cart_items_quantity_positive CHECK (quantity >= 1);`},
	{"chk_orders_status_allowed", ""}, // built from models.AllOrderStatuses
	{"chk_orders_currency_len", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_currency_len;
ALTER TABLE orders ADD CONSTRAINT chk_orders_currency_len CHECK (char_length(currency) = 3);`},
	{"chk_orders_amounts_non_negative", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_amounts_non_negative;
ALTER TABLE orders ADD CONSTRAINT chk_orders_amounts_non_negative
  CHECK (subtotal >= 0 AND tax_amount >= 0 AND discount_amount >= 0 AND shipping_amount >= 0);`},
	{"chk_order_items_quantity_positive", `
ALTER TABLE order_items DROP CONSTRAINT IF EXISTS chk_order_items_quantity_positive;
ALTER TABLE order_items ADD CONSTRAINT chk_order_items_quantity_positive CHECK (quantity > 0);`},
	{"chk_order_items_prices_non_negative", `
ALTER TABLE order_items DROP CONSTRAINT IF EXISTS chk_order_items_prices_non_negative;
ALTER TABLE order_items ADD CONSTRAINT chk_order_items_prices_non_negative
  CHECK (unit_price >= 0 AND tax_amount >= 0 AND discount_amount >= 0 AND tax_percent BETWEEN 0 AND 100);`},
	{"chk_refunds_status_allowed", `
ALTER TABLE refunds DROP CONSTRAINT IF EXISTS chk_refunds_status_allowed;
ALTER TABLE refunds ADD CONSTRAINT chk_refunds_status_allowed
  CHECK (status IN ('requested','processing','completed','failed'));`},
	{"chk_refunds_amount_non_negative", `
ALTER TABLE refunds DROP CONSTRAINT IF EXISTS chk_refunds_amount_non_negative;
ALTER TABLE refunds ADD CONSTRAINT chk_refunds_amount_non_negative CHECK (amount >= 0);`},
	{"chk_refund_items_quantity_positive", `
ALTER TABLE refund_items DROP CONSTRAINT IF EXISTS chk_refund_items_quantity_positive;
ALTER TABLE refund_items ADD CONSTRAINT chk_refund_items_quantity_positive CHECK (quantity > 0 AND amount >= 0);`},
}

var indexes = []step{
	{"ux_cart_items_cart_product", `CREATE UNIQUE INDEX IF NOT EXISTS ux_cart_items_cart_product ON cart_items (cart_id, product_id)`},
	{"ix_orders_user_created", `CREATE INDEX IF NOT EXISTS ix_orders_user_created ON orders (user_id, created_at DESC)`},
	{"ix_orders_status_created", `CREATE INDEX IF NOT EXISTS ix_orders_status_created ON orders (status, created_at DESC)`},
	{"ix_products_active_created", `CREATE INDEX IF NOT EXISTS ix_products_active_created ON products (is_active, created_at DESC)`},
	{"ix_products_name_trgm", `CREATE INDEX IF NOT EXISTS ix_products_name_trgm ON products USING gin (name gin_trgm_ops)`},
}

var foreignKeys = []step{
	{"fk_cart_items_cart", `
ALTER TABLE cart_items
  DROP CONSTRAINT IF EXISTS fk_cart_items_cart,
  ADD CONSTRAINT fk_cart_items_cart FOREIGN KEY (cart_id) REFERENCES carts(id) ON DELETE CASCADE;`},
	{"fk_cart_items_product", `
ALTER TABLE cart_items
  DROP CONSTRAINT IF EXISTS fk_cart_items_product,
  ADD CONSTRAINT fk_cart_items_product FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE;`},
	{"fk_order_items_order", `
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_order,
  ADD CONSTRAINT fk_order_items_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;`},
	{"fk_order_items_product", `
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_product,
  ADD CONSTRAINT fk_order_items_product FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE RESTRICT;`},
	{"fk_refunds_order", `
ALTER TABLE refunds
  DROP CONSTRAINT IF EXISTS fk_refunds_order,
  ADD CONSTRAINT fk_refunds_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;`},
	{"fk_refund_items_refund", `
ALTER TABLE refund_items
  DROP CONSTRAINT IF EXISTS fk_refund_items_refund,
  ADD CONSTRAINT fk_refund_items_refund FOREIGN KEY (refund_id) REFERENCES refunds(id) ON DELETE CASCADE;`},
	{"fk_refund_items_order_item", `
ALTER TABLE refund_items
  DROP CONSTRAINT IF EXISTS fk_refund_items_order_item,
  ADD CONSTRAINT fk_refund_items_order_item FOREIGN KEY (order_item_id) REFERENCES order_items(id) ON DELETE RESTRICT;`},
}

func orderStatusCheck() string {
	quoted := make([]string, 0, len(models.AllOrderStatuses()))
	for _, s := range models.AllOrderStatuses() {
		quoted = append(quoted, "'"+string(s)+"'")
	}
	return fmt.Sprintf(`
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_status_allowed;
ALTER TABLE orders ADD CONSTRAINT chk_orders_status_allowed CHECK (status IN (%s));`, strings.Join(quoted, ","))
}

// orderItemsGuard blocks UPDATE/DELETE of items whose order left the mutable statuses, including
// bulk statements that bypass the model hooks. Items of a deleted order (cascade) are not guarded.
func orderItemsGuard() []step {
	mutable := make([]string, 0, 2)
	for _, s := range models.AllOrderStatuses() {
		if s.Mutable() {
			mutable = append(mutable, "'"+string(s)+"'")
		}
	}
	return []step{
		{"guard_order_items_immutable", fmt.Sprintf(`
CREATE OR REPLACE FUNCTION guard_order_items_immutable() RETURNS trigger AS $$
DECLARE st text;
BEGIN
  SELECT status INTO st FROM orders WHERE id = OLD.order_id;
  IF st IS NOT NULL AND st NOT IN (%s) THEN
    RAISE EXCEPTION 'items of order %% are immutable in status %%', OLD.order_id, st
      USING ERRCODE = 'check_violation', CONSTRAINT = '%s';
  END IF;
  IF TG_OP = 'DELETE' THEN RETURN OLD; END IF;
  RETURN NEW;
END; $$ LANGUAGE plpgsql;`, strings.Join(mutable, ","), models.OrderItemsImmutableConstraint)},
		{"trg_order_items_immutable", `
DROP TRIGGER IF EXISTS trg_order_items_immutable ON order_items;
CREATE TRIGGER trg_order_items_immutable
BEFORE UPDATE OR DELETE ON order_items
FOR EACH ROW EXECUTE FUNCTION guard_order_items_immutable();`},
	}
}

func updatedAtTrigger(table string) string {
	return fmt.Sprintf(`
DROP TRIGGER IF EXISTS trg_%[1]s_updated ON %[1]s;
CREATE TRIGGER trg_%[1]s_updated
BEFORE UPDATE ON %[1]s
FOR EACH ROW EXECUTE FUNCTION set_updated_at();`, table)
}

func run(ctx context.Context, db *gorm.DB, log *zap.Logger, group string, steps []step) error {
	log.Info("Миграция: "+group, zap.Int("steps", len(steps)))
	for _, s := range steps {
		if err := db.WithContext(ctx).Exec(s.sql).Error; err != nil {
			log.Error("Не удалось выполнить шаг миграции", zap.String("group", group), zap.String("step", s.name), zap.Error(err))
			return fmt.Errorf("%s %s: %w", group, s.name, err)
		}
	}
	log.Info("Миграция: "+group+" выполнено")
	return nil
}

// MigrateCheckoutDB creates the catalog, cart, order and refund schema. Every step is idempotent.
func MigrateCheckoutDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("Начало миграции базы данных checkout")

	if opt.CreateExtensions {
		if err := run(ctx, db, log, "extensions", extensions); err != nil {
			return err
		}
	}

	log.Info("Создание таблиц")
	if err := db.WithContext(ctx).AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Refund{},
		&models.RefundItem{},
	); err != nil {
		log.Error("Не удалось создать таблицы", zap.Error(err))
		return err
	}

	if opt.CreateUpdatedAtTrigger {
		triggers := []step{{"set_updated_at", `
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;`}}
		for _, t := range touchedTables {
			triggers = append(triggers, step{"trg_" + t + "_updated", updatedAtTrigger(t)})
		}
		if err := run(ctx, db, log, "triggers", triggers); err != nil {
			return err
		}
	}

	if opt.CreateChecks {
		cs := make([]step, 0, len(checks))
		for _, c := range checks {
			if c.sql == "" {
				c.sql = orderStatusCheck()
			}
			cs = append(cs, c)
		}
		if err := run(ctx, db, log, "checks", cs); err != nil {
			return err
		}
		if err := run(ctx, db, log, "guards", orderItemsGuard()); err != nil {
			return err
		}
	}

	if opt.CreateIndexes {
		if err := run(ctx, db, log, "indexes", indexes); err != nil {
			return err
		}
	}

	if opt.CreateFKsViaSQL {
		if err := run(ctx, db, log, "foreign keys", foreignKeys); err != nil {
			return err
		}
	}

	log.Info("Миграция базы данных checkout успешно завершена")
	return nil
}
