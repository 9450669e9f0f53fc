package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newOrderTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Order{}))

	t.Cleanup(func() {
		db.Exec("DELETE FROM orders")
	})
	return db
}

func TestOrderPaymentIDUnique(t *testing.T) {
	db := newOrderTestDB(t)

	ref := "pi_3Abc000000000001"
	first := Order{UserID: 1, OrderNumber: "ORD-1-0001", TotalAmount: 49.99, PaymentMethod: PaymentMethodStripe, PaymentID: &ref, Status: OrderStatusPaid}
	require.NoError(t, db.Create(&first).Error)

	second := Order{UserID: 2, OrderNumber: "ORD-1-0002", TotalAmount: 19.99, PaymentMethod: PaymentMethodStripe, PaymentID: &ref, Status: OrderStatusPaid}
	assert.Error(t, db.Create(&second).Error, "reusing a gateway reference must violate the unique index")
}

func TestOrderNilPaymentIDNotUnique(t *testing.T) {
	db := newOrderTestDB(t)

	first := Order{UserID: 1, OrderNumber: "ORD-2-0001", TotalAmount: 9.99, PaymentMethod: PaymentMethodWallet, Status: OrderStatusPaid}
	require.NoError(t, db.Create(&first).Error)

	second := Order{UserID: 1, OrderNumber: "ORD-2-0002", TotalAmount: 9.99, PaymentMethod: PaymentMethodWallet, Status: OrderStatusPaid}
	assert.NoError(t, db.Create(&second).Error, "wallet orders carry no gateway reference and must not collide")
}
