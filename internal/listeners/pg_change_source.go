package listeners

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// OrdersChannel - канал NOTIFY, в который пишут триггеры на orders и order_items.
const OrdersChannel = "orders_changed"

// ChangeSource блокируется и вызывает onChange на каждое изменение заказов.
// onChange также вызывается сразу после подписки, чтобы подобрать пропущенные изменения.
// Возврат с ошибкой означает потерю соединения.
type ChangeSource interface {
	Listen(ctx context.Context, onChange func()) error
}

// PgChangeSource держит отдельное соединение из пула под LISTEN.
type PgChangeSource struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPgChangeSource(pool *pgxpool.Pool, logger *zap.Logger) *PgChangeSource {
	return &PgChangeSource{pool: pool, logger: logger}
}

func (s *PgChangeSource) Listen(ctx context.Context, onChange func()) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listen connection: %w", err)
	}
	defer func() {
		// соединение возвращается в пул, подписка не должна уехать вместе с ним
		_, _ = conn.Exec(context.Background(), "UNLISTEN *")
		conn.Release()
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+OrdersChannel); err != nil {
		return fmt.Errorf("listen %s: %w", OrdersChannel, err)
	}
	s.logger.Info("listening for order changes", zap.String("channel", OrdersChannel))
	onChange()

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		s.logger.Debug("order change", zap.String("payload", n.Payload))
		onChange()
	}
}
