package basehdl

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"eshop_backend/internal/common"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type widget struct {
	ID   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name string             `json:"name" bson:"name"`
}

type widgetCreate struct {
	Name string `json:"name" bson:"name" validate:"required"`
}

type widgetUpdate struct {
	Name *string `json:"name" bson:"name,omitempty"`
}

// fakeWidgets là BaseServiceMongo[widget] trong bộ nhớ
type fakeWidgets struct {
	items     map[primitive.ObjectID]widget
	deleteErr error
}

func newFakeWidgets() *fakeWidgets {
	return &fakeWidgets{items: map[primitive.ObjectID]widget{}}
}

func (f *fakeWidgets) InsertOne(_ context.Context, w widget) (widget, error) {
	w.ID = primitive.NewObjectID()
	f.items[w.ID] = w
	return w, nil
}

func (f *fakeWidgets) FindOne(context.Context, interface{}, *options.FindOneOptions) (widget, error) {
	return widget{}, common.ErrNotFound
}

func (f *fakeWidgets) FindOneById(_ context.Context, id primitive.ObjectID) (widget, error) {
	w, ok := f.items[id]
	if !ok {
		return widget{}, common.ErrNotFound
	}
	return w, nil
}

func (f *fakeWidgets) FindManyByIds(context.Context, []primitive.ObjectID) ([]widget, error) {
	return []widget{}, nil
}

func (f *fakeWidgets) Find(context.Context, interface{}, *options.FindOptions) ([]widget, error) {
	out := []widget{}
	for _, w := range f.items {
		out = append(out, w)
	}
	return out, nil
}

func (f *fakeWidgets) CountDocuments(context.Context, interface{}) (int64, error) {
	return int64(len(f.items)), nil
}

func (f *fakeWidgets) UpdateById(_ context.Context, id primitive.ObjectID, data interface{}) (widget, error) {
	w, ok := f.items[id]
	if !ok {
		return widget{}, common.ErrNotFound
	}
	if in, ok := data.(widgetUpdate); ok && in.Name != nil {
		w.Name = *in.Name
	}
	f.items[id] = w
	return w, nil
}

func (f *fakeWidgets) DeleteById(_ context.Context, id primitive.ObjectID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.items[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeWidgets) DocumentExists(context.Context, interface{}) (bool, error) {
	return len(f.items) > 0, nil
}

func newWidgetApp(svc *fakeWidgets) *fiber.App {
	h := NewBaseHandler[widget, widgetCreate, widgetUpdate](svc, "widget")
	app := fiber.New()
	app.Post("/widgets", h.InsertOne)
	app.Get("/widgets", h.Find)
	app.Get("/widgets/get/count", h.CountDocuments)
	app.Get("/widgets/:id", h.FindOneById)
	app.Put("/widgets/:id", h.UpdateById)
	app.Delete("/widgets/:id", h.DeleteById)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestBaseHandler_CRUD(t *testing.T) {
	svc := newFakeWidgets()
	app := newWidgetApp(svc)

	status, body := doJSON(t, app, "POST", "/widgets", `{"name":"bolt"}`)
	require.Equal(t, 201, status)
	assert.Equal(t, "success", body["status"])
	id := body["data"].(map[string]interface{})["id"].(string)

	status, body = doJSON(t, app, "GET", "/widgets/"+id, "")
	assert.Equal(t, 200, status)
	assert.Equal(t, "bolt", body["data"].(map[string]interface{})["name"])

	status, body = doJSON(t, app, "PUT", "/widgets/"+id, `{"name":"nut"}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, "nut", body["data"].(map[string]interface{})["name"])

	status, body = doJSON(t, app, "GET", "/widgets/get/count", "")
	assert.Equal(t, 200, status)
	assert.EqualValues(t, 1, body["data"].(map[string]interface{})["count"])

	status, _ = doJSON(t, app, "DELETE", "/widgets/"+id, "")
	assert.Equal(t, 200, status)
	assert.Empty(t, svc.items)
}

func TestBaseHandler_Errors(t *testing.T) {
	svc := newFakeWidgets()
	app := newWidgetApp(svc)

	status, body := doJSON(t, app, "GET", "/widgets/abc", "")
	assert.Equal(t, 400, status)
	assert.Equal(t, common.ErrCodeValidationFormat.Code, body["code"])
	assert.Equal(t, "error", body["status"])

	status, body = doJSON(t, app, "GET", "/widgets/"+primitive.NewObjectID().Hex(), "")
	assert.Equal(t, 404, status)
	assert.Equal(t, common.ErrCodeDatabaseQuery.Code, body["code"])

	status, _ = doJSON(t, app, "POST", "/widgets", `{"name":`)
	assert.Equal(t, 400, status)

	svc.deleteErr = errors.New("boom")
	status, body = doJSON(t, app, "DELETE", "/widgets/"+primitive.NewObjectID().Hex(), "")
	assert.Equal(t, 500, status)
	assert.Equal(t, "boom", body["message"])
}

func TestBaseHandler_ValidationUsesGlobalValidator(t *testing.T) {
	// không có validator toàn cục thì struct rỗng vẫn hợp lệ
	assert.NoError(t, ValidateInput(&widgetCreate{}))
}

func TestSafeHandler_RecoversPanic(t *testing.T) {
	app := fiber.New()
	app.Get("/panic", func(c fiber.Ctx) error {
		return SafeHandler(c, func() error { panic("kaboom") })
	})

	status, body := doJSON(t, app, "GET", "/panic", "")
	assert.Equal(t, 500, status)
	assert.Equal(t, common.ErrCodeInternalServer.Code, body["code"])
}

func TestHandleHealth(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", NewSystemHandler(func(context.Context) error { return nil }).HandleHealth)
	app.Get("/down", NewSystemHandler(func(context.Context) error { return errors.New("server selection error: 10.0.0.5:27017") }).HandleHealth)

	status, body := doJSON(t, app, "GET", "/ok", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, "healthy", body["data"].(map[string]interface{})["status"])

	status, body = doJSON(t, app, "GET", "/down", "")
	assert.Equal(t, 503, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "degraded", data["status"])
	assert.Equal(t, "error", data["services"].(map[string]interface{})["database"])
	assert.NotContains(t, data, "database_error")
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "27017")
}
