package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)
	require.NotNil(t, m)

	t.Run("予約操作カウンタを記録できる", func(t *testing.T) {
		m.BookingOperationsTotal.WithLabelValues("create", "success").Inc()
		m.BookingOperationsTotal.WithLabelValues("create", "rejected").Add(2)

		assert.Equal(t, float64(1),
			testutil.ToFloat64(m.BookingOperationsTotal.WithLabelValues("create", "success")))
		assert.Equal(t, float64(2),
			testutil.ToFloat64(m.BookingOperationsTotal.WithLabelValues("create", "rejected")))
	})

	t.Run("空室数ゲージを記録できる", func(t *testing.T) {
		m.RoomsAvailable.WithLabelValues("1").Set(7)
		assert.Equal(t, float64(7), testutil.ToFloat64(m.RoomsAvailable.WithLabelValues("1")))
	})

	t.Run("同じレジストリへの二重登録はパニックする", func(t *testing.T) {
		assert.Panics(t, func() { NewWithRegistry(reg) })
	})
}
