package order_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/luxa-shop/internal/apperr"
	"github.com/example/luxa-shop/internal/domain/order"
	"github.com/example/luxa-shop/internal/infrastructure/store/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(repo *mocks.MockOrderRepository, id, number string, status order.Status, createdAt time.Time) {
	repo.SetData(&order.Order{
		ID:             id,
		OrderNumber:    number,
		CustomerName:   "Client " + id,
		Phone:          "0555",
		DeliveryMethod: order.DeliveryBureau,
		Items:          []order.LineItem{{ProductID: "p", Name: "Rouge", Price: 1000, Quantity: 1}},
		TotalAmount:    1000,
		Status:         status,
		CreatedAt:      createdAt,
	})
}

func newService() (*order.Service, *mocks.MockOrderRepository, *mocks.MockPublisher) {
	repo := mocks.NewMockOrderRepository()
	pub := mocks.NewMockPublisher()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	seed(repo, "o1", "LUX-1000", order.StatusPending, base)
	seed(repo, "o2", "LUX-2000", order.StatusConfirmed, base.Add(time.Hour))
	seed(repo, "o3", "LUX-3000", order.StatusDelivered, base.Add(2*time.Hour))
	return order.NewService(repo, pub), repo, pub
}

// ============================================
// List Tests
// ============================================

func TestService_List(t *testing.T) {
	tests := []struct {
		name   string
		filter order.Filter
		want   []string
	}{
		{"all newest first", order.Filter{}, []string{"o3", "o2", "o1"}},
		{"by status", order.Filter{Status: order.StatusConfirmed}, []string{"o2"}},
		{"search number", order.Filter{Search: "lux-1"}, []string{"o1"}},
		{"no match", order.Filter{Search: "ZZZ"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newService()

			orders, err := svc.List(context.Background(), tt.filter)

			require.NoError(t, err)
			ids := make([]string, len(orders))
			for i, o := range orders {
				ids[i] = o.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestService_List_Errors(t *testing.T) {
	svc, repo, _ := newService()

	_, err := svc.List(context.Background(), order.Filter{Status: "perdue"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	repo.Err = errors.New("boom")
	_, err = svc.List(context.Background(), order.Filter{})
	assert.ErrorIs(t, err, apperr.ErrRemote)
}

// ============================================
// UpdateStatus Tests
// ============================================

func TestService_UpdateStatus_Success(t *testing.T) {
	svc, repo, pub := newService()

	o, err := svc.UpdateStatus(context.Background(), "o1", order.StatusConfirmed)

	require.NoError(t, err)
	assert.Equal(t, order.StatusConfirmed, o.Status)
	assert.Equal(t, []mocks.UpdateStatusCall{{ID: "o1", Status: order.StatusConfirmed}}, repo.UpdateStatusCalls)

	require.Len(t, pub.Events, 1)
	assert.Equal(t, "o1", pub.Events[0].Key)
	event := pub.Events[0].Event.(order.Event)
	assert.Equal(t, order.EventOrderStatusChanged, event.EventType)
	changed := event.Data.(order.OrderStatusChanged)
	assert.Equal(t, order.StatusPending, changed.From)
	assert.Equal(t, order.StatusConfirmed, changed.To)
}

func TestService_UpdateStatus_SameStatusIsNoop(t *testing.T) {
	svc, repo, pub := newService()

	o, err := svc.UpdateStatus(context.Background(), "o2", order.StatusConfirmed)

	require.NoError(t, err)
	assert.Equal(t, order.StatusConfirmed, o.Status)
	assert.Empty(t, repo.UpdateStatusCalls)
	assert.Empty(t, pub.Events)
}

func TestService_UpdateStatus_AnyToAny(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		steps []order.Status
	}{
		{"pending to delivered then back to confirmed", "o1", []order.Status{order.StatusDelivered, order.StatusConfirmed}},
		{"delivered reopened as pending", "o3", []order.Status{order.StatusPending}},
		{"cancelled then shipped", "o2", []order.Status{order.StatusCancelled, order.StatusShipped}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, pub := newService()
			before, err := svc.Get(context.Background(), tt.id)
			require.NoError(t, err)
			from := before.Status

			var wantCalls []mocks.UpdateStatusCall
			for i, to := range tt.steps {
				o, err := svc.UpdateStatus(context.Background(), tt.id, to)

				require.NoError(t, err)
				assert.Equal(t, to, o.Status)
				wantCalls = append(wantCalls, mocks.UpdateStatusCall{ID: tt.id, Status: to})

				require.Len(t, pub.Events, i+1)
				changed := pub.Events[i].Event.(order.Event).Data.(order.OrderStatusChanged)
				assert.Equal(t, from, changed.From)
				assert.Equal(t, to, changed.To)
				from = to
			}
			assert.Equal(t, wantCalls, repo.UpdateStatusCalls)
		})
	}
}

func TestService_UpdateStatus_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		status order.Status
		want   error
	}{
		{"unknown status", "o1", "perdue", apperr.ErrValidation},
		{"missing order", "nope", order.StatusConfirmed, apperr.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, pub := newService()

			_, err := svc.UpdateStatus(context.Background(), tt.id, tt.status)

			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, repo.UpdateStatusCalls)
			assert.Empty(t, pub.Events)
		})
	}
}

// ============================================
// Delete Tests
// ============================================

func TestService_Delete(t *testing.T) {
	svc, repo, pub := newService()

	require.NoError(t, svc.Delete(context.Background(), "o1"))

	assert.Equal(t, []string{"o1"}, repo.DeleteCalls)
	_, err := svc.Get(context.Background(), "o1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	require.Len(t, pub.Events, 1)
	assert.Equal(t, order.EventOrderDeleted, pub.Events[0].Event.(order.Event).EventType)
}

func TestService_Delete_RequiresID(t *testing.T) {
	svc, repo, _ := newService()

	assert.ErrorIs(t, svc.Delete(context.Background(), ""), apperr.ErrValidation)
	assert.Empty(t, repo.DeleteCalls)
}

func TestService_PublishFailureIsSwallowed(t *testing.T) {
	svc, _, pub := newService()
	pub.Err = errors.New("broker down")

	_, err := svc.UpdateStatus(context.Background(), "o1", order.StatusCancelled)

	assert.NoError(t, err)
	assert.Len(t, pub.Events, 1)
}
