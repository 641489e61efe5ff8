package orderhdl

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	models "eshop_backend/internal/api/order/models"
	"eshop_backend/internal/common"
	"eshop_backend/internal/global"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orders struct {
	items map[primitive.ObjectID]models.Order
	last  models.Order
}

func (o *orders) InsertOne(_ context.Context, it models.Order) (models.Order, error) {
	it.ID = primitive.NewObjectID()
	o.items[it.ID] = it
	o.last = it
	return it, nil
}

func (o *orders) FindOne(context.Context, interface{}, *options.FindOneOptions) (models.Order, error) {
	return models.Order{}, common.ErrNotFound
}

func (o *orders) FindOneById(_ context.Context, id primitive.ObjectID) (models.Order, error) {
	if it, ok := o.items[id]; ok {
		return it, nil
	}
	return models.Order{}, common.ErrNotFound
}

func (o *orders) FindManyByIds(context.Context, []primitive.ObjectID) ([]models.Order, error) {
	return []models.Order{}, nil
}

func (o *orders) Find(context.Context, interface{}, *options.FindOptions) ([]models.Order, error) {
	out := []models.Order{}
	for _, it := range o.items {
		out = append(out, it)
	}
	return out, nil
}

func (o *orders) CountDocuments(context.Context, interface{}) (int64, error) {
	return int64(len(o.items)), nil
}

func (o *orders) UpdateById(ctx context.Context, id primitive.ObjectID, _ interface{}) (models.Order, error) {
	return o.FindOneById(ctx, id)
}

func (o *orders) DeleteById(_ context.Context, id primitive.ObjectID) error {
	if _, ok := o.items[id]; !ok {
		return common.ErrNotFound
	}
	delete(o.items, id)
	return nil
}

func (o *orders) DocumentExists(context.Context, interface{}) (bool, error) {
	return false, nil
}

func TestOrderInsertUsesConverter(t *testing.T) {
	global.InitValidator()
	store := &orders{items: map[primitive.ObjectID]models.Order{}}
	h := NewOrderHandler(store)

	app := fiber.New()
	app.Post("/orders", h.InsertOne)
	app.Get("/orders/get/count", h.CountDocuments)

	user := primitive.NewObjectID().Hex()
	product := primitive.NewObjectID().Hex()
	body := `{"orderItems":[{"product":"` + product + `","quantity":3}],"shippingAddress1":"1 Trần Phú","city":"Huế","zip":"530000","country":"VN","phone":"0900000000","totalPrice":90,"user":"` + user + `"}`

	req := httptest.NewRequest("POST", "/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	require.Equal(t, 201, resp.StatusCode, string(raw))

	assert.Equal(t, models.OrderStatusPending, store.last.Status)
	assert.Equal(t, user, store.last.User.Hex())
	require.Len(t, store.last.OrderItems, 1)
	assert.Equal(t, product, store.last.OrderItems[0].Product.Hex())

	resp, err = app.Test(httptest.NewRequest("GET", "/orders/get/count", nil))
	require.NoError(t, err)
	raw, _ = io.ReadAll(resp.Body)
	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, float64(1), out["data"].(map[string]interface{})["count"])
}

func TestOrderInsertRejectsEmptyItems(t *testing.T) {
	global.InitValidator()
	h := NewOrderHandler(&orders{items: map[primitive.ObjectID]models.Order{}})
	app := fiber.New()
	app.Post("/orders", h.InsertOne)

	body := `{"orderItems":[],"shippingAddress1":"x","city":"y","zip":"z","country":"VN","phone":"1","user":"` + primitive.NewObjectID().Hex() + `"}`
	req := httptest.NewRequest("POST", "/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
