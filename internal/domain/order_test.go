package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_LabelsCoverEveryStage(t *testing.T) {
	tests := []struct {
		raw   string
		label string
	}{
		{"payment", "Processando Pagamento"},
		{"design", "Criando o Design"},
		{"production", "Produzindo"},
		{"packing", "Embalando o Pedido"},
		{"shipping", "Pedido Enviado"},
		{"finish", "Pedido Finalizado"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			st, err := ParseOrderStatus(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.label, st.Label())
		})
	}
}

func TestOrderStatus_Unknown(t *testing.T) {
	_, err := ParseOrderStatus("delivered")
	assert.Error(t, err)
	assert.Equal(t, "Desconhecido", OrderStatus("delivered").Label())
	assert.False(t, OrderStatus("delivered").IsShipped())
	assert.True(t, OrderStatusShipping.IsShipped())
}

func TestPaymentStatus_Labels(t *testing.T) {
	st, err := ParsePaymentStatus("paidOut")
	require.NoError(t, err)
	assert.Equal(t, "Pagamento confirmado", st.Label())
	assert.Equal(t, "Aguardando o pagamento...", PaymentStatusWaiting.Label())
	assert.Equal(t, "Pagamento recusado", PaymentStatusRefused.Label())
	assert.Equal(t, "Pagamento cancelado", PaymentStatusCancel.Label())

	_, err = ParsePaymentStatus("paid")
	assert.Error(t, err)
}

func TestCheckoutPaymentStatus_Labels(t *testing.T) {
	st, err := ParseCheckoutPaymentStatus("no_payment_required")
	require.NoError(t, err)
	assert.Equal(t, "Não requerido", st.Label())
	assert.Equal(t, "Pago", CheckoutPaymentPaid.Label())
	assert.Equal(t, "Não pago", CheckoutPaymentUnpaid.Label())
	assert.Equal(t, "Desconhecido", CheckoutPaymentStatus("").Label())
}

func TestNewOrderRequest_ReducesItems(t *testing.T) {
	items := []LineItem{
		{
			ID:           "line-1",
			ProductID:    "p1",
			ProductName:  "Camisa A",
			CategoryName: "Camisetas",
			ThumbnailURL: "https://img/p1.png",
			SizeID:       "s1",
			SizeLabel:    "M",
			Quantity:     2,
			UnitPrice:    decimal.NewFromInt(50),
			LineTotal:    decimal.NewFromInt(100),
		},
	}

	req := NewOrderRequest("client-1", "sem bolso", decimal.NewFromInt(100), items)

	assert.Equal(t, "client-1", req.ClientID)
	assert.Equal(t, "sem bolso", req.Observation)
	assert.True(t, req.Total.Equal(decimal.NewFromInt(100)))
	require.Len(t, req.Items, 1)
	assert.Equal(t, OrderRequestItem{
		ProductID:    "p1",
		SizeID:       "s1",
		Quantity:     2,
		LineTotal:    decimal.NewFromInt(100),
		ThumbnailURL: "https://img/p1.png",
		ProductName:  "Camisa A",
		UnitPrice:    decimal.NewFromInt(50),
	}, req.Items[0])
}
