package cataloghdl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	basesvc "eshop_backend/internal/api/base/service"
	models "eshop_backend/internal/api/catalog/models"
	catalogsvc "eshop_backend/internal/api/catalog/service"
	"eshop_backend/internal/common"
	"eshop_backend/internal/storage"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// store tối giản cho test handler: không hỗ trợ filter
type store[T any] struct {
	items map[primitive.ObjectID]T
	setID func(*T, primitive.ObjectID)
}

func (s *store[T]) InsertOne(_ context.Context, item T) (T, error) {
	id := primitive.NewObjectID()
	s.setID(&item, id)
	s.items[id] = item
	return item, nil
}

func (s *store[T]) FindOne(context.Context, interface{}, *options.FindOneOptions) (T, error) {
	var zero T
	return zero, common.ErrNotFound
}

func (s *store[T]) FindOneById(_ context.Context, id primitive.ObjectID) (T, error) {
	item, ok := s.items[id]
	if !ok {
		var zero T
		return zero, common.ErrNotFound
	}
	return item, nil
}

func (s *store[T]) FindManyByIds(_ context.Context, ids []primitive.ObjectID) ([]T, error) {
	out := []T{}
	for _, id := range ids {
		if item, ok := s.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *store[T]) Find(context.Context, interface{}, *options.FindOptions) ([]T, error) {
	out := []T{}
	for _, item := range s.items {
		out = append(out, item)
	}
	return out, nil
}

func (s *store[T]) CountDocuments(context.Context, interface{}) (int64, error) {
	return int64(len(s.items)), nil
}

func (s *store[T]) UpdateById(_ context.Context, id primitive.ObjectID, data interface{}) (T, error) {
	var zero T
	item, ok := s.items[id]
	if !ok {
		return zero, common.ErrNotFound
	}
	update, err := basesvc.ToUpdateData(data)
	if err != nil {
		return zero, err
	}
	doc := bson.M{}
	raw, _ := bson.Marshal(item)
	_ = bson.Unmarshal(raw, &doc)
	for k, v := range update.Set {
		doc[k] = v
	}
	raw, _ = bson.Marshal(doc)
	var updated T
	if err := bson.Unmarshal(raw, &updated); err != nil {
		return zero, err
	}
	s.items[id] = updated
	return updated, nil
}

func (s *store[T]) DeleteById(_ context.Context, id primitive.ObjectID) error {
	if _, ok := s.items[id]; !ok {
		return common.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *store[T]) DocumentExists(context.Context, interface{}) (bool, error) {
	return len(s.items) > 0, nil
}

type testEnv struct {
	app      *fiber.App
	category models.Category
	local    *storage.LocalStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	products := &store[models.Product]{items: map[primitive.ObjectID]models.Product{}, setID: func(p *models.Product, id primitive.ObjectID) { p.ID = id }}
	categories := &store[models.Category]{items: map[primitive.ObjectID]models.Category{}, setID: func(c *models.Category, id primitive.ObjectID) { c.ID = id }}
	cat, err := categories.InsertOne(context.Background(), models.Category{Name: "Phones"})
	require.NoError(t, err)

	local, err := storage.NewLocalStorage(t.TempDir(), "/public/uploads")
	require.NoError(t, err)

	h := NewProductHandler(catalogsvc.NewProductService(products, categories, local))
	c := NewCategoryHandler(categories)
	app := fiber.New()
	v1 := app.Group("/api/v1")
	v1.Get("/products/get/count", h.HandleCount)
	v1.Get("/products/get/featured/:count", h.HandleFeatured)
	v1.Put("/products/gallery-images/:id", h.HandleUpdateGallery)
	v1.Get("/products", h.HandleList)
	v1.Post("/products", h.HandleCreate)
	v1.Get("/products/:id", h.HandleGet)
	v1.Put("/products/:id", h.HandleUpdate)
	v1.Delete("/products/:id", h.HandleDelete)
	v1.Get("/categories/:id", c.FindOneById)
	return &testEnv{app: app, category: cat, local: local}
}

type part struct {
	field, filename, contentType string
}

func multipartBody(t *testing.T, fields map[string]string, files []part) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, f.field, f.filename))
		h.Set("Content-Type", f.contentType)
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write([]byte("fake-image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func (e *testEnv) fields() map[string]string {
	return map[string]string{
		"name":         "Phone",
		"description":  "A phone",
		"price":        "10",
		"category":     e.category.ID.Hex(),
		"countInStock": "5",
		"isFeatured":   "true",
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body *bytes.Buffer, contentType string) (int, map[string]interface{}) {
	t.Helper()
	var req = httptest.NewRequest(method, path, nil)
	if body != nil {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestProductHandler_CreateAndRead(t *testing.T) {
	e := newTestEnv(t)

	body, ct := multipartBody(t, e.fields(), []part{{"image", "phone.png", "image/png"}})
	status, out := e.do(t, "POST", "/api/v1/products", body, ct)
	require.Equal(t, 201, status, out)
	data := out["data"].(map[string]interface{})
	assert.True(t, strings.HasPrefix(data["image"].(string), "http://example.com/public/uploads/phone-"), data["image"])
	id := data["id"].(string)

	status, out = e.do(t, "GET", "/api/v1/products/"+id, nil, "")
	require.Equal(t, 200, status)
	category := out["data"].(map[string]interface{})["category"].(map[string]interface{})
	assert.Equal(t, "Phones", category["name"])

	status, out = e.do(t, "GET", "/api/v1/products/get/count", nil, "")
	require.Equal(t, 200, status)
	assert.EqualValues(t, 1, out["data"].(map[string]interface{})["productCount"])

	status, out = e.do(t, "GET", "/api/v1/products/get/featured/1", nil, "")
	require.Equal(t, 200, status)
	assert.Len(t, out["data"], 1)
}

func TestProductHandler_CreateRejectsGif(t *testing.T) {
	e := newTestEnv(t)
	body, ct := multipartBody(t, e.fields(), []part{{"image", "anim.gif", "image/gif"}})
	status, out := e.do(t, "POST", "/api/v1/products", body, ct)
	assert.Equal(t, 400, status)
	assert.Equal(t, common.ErrUnsupportedImageType.Error(), out["message"])
}

func TestProductHandler_CreateMissingImage(t *testing.T) {
	e := newTestEnv(t)
	body, ct := multipartBody(t, e.fields(), nil)
	status, out := e.do(t, "POST", "/api/v1/products", body, ct)
	assert.Equal(t, 400, status)
	assert.Equal(t, common.ErrMissingImage.Error(), out["message"])
}

func TestProductHandler_UpdateMalformedID(t *testing.T) {
	e := newTestEnv(t)
	body, ct := multipartBody(t, e.fields(), nil)
	status, out := e.do(t, "PUT", "/api/v1/products/abc", body, ct)
	assert.Equal(t, 400, status)
	assert.Equal(t, common.ErrInvalidProductID.Error(), out["message"])
}

func TestProductHandler_Gallery(t *testing.T) {
	e := newTestEnv(t)
	body, ct := multipartBody(t, e.fields(), []part{{"image", "main.png", "image/png"}})
	status, out := e.do(t, "POST", "/api/v1/products", body, ct)
	require.Equal(t, 201, status)
	id := out["data"].(map[string]interface{})["id"].(string)

	body, ct = multipartBody(t, nil, []part{
		{"images", "a.png", "image/png"},
		{"images", "b.jpg", "image/jpeg"},
	})
	status, out = e.do(t, "PUT", "/api/v1/products/gallery-images/"+id, body, ct)
	require.Equal(t, 200, status, out)
	images := out["data"].(map[string]interface{})["images"].([]interface{})
	require.Len(t, images, 2)
	assert.Contains(t, images[0], "/a-")
	assert.Contains(t, images[1], "/b-")
}

func TestProductHandler_DeleteNotFound(t *testing.T) {
	e := newTestEnv(t)
	status, out := e.do(t, "DELETE", "/api/v1/products/"+primitive.NewObjectID().Hex(), nil, "")
	assert.Equal(t, 404, status)
	assert.Equal(t, common.ErrProductNotFound.Error(), out["message"])
}

func TestProductHandler_FeaturedBadCount(t *testing.T) {
	e := newTestEnv(t)
	status, _ := e.do(t, "GET", "/api/v1/products/get/featured/abc", nil, "")
	assert.Equal(t, 400, status)
}

func TestCategoryHandler_Get(t *testing.T) {
	e := newTestEnv(t)
	status, out := e.do(t, "GET", "/api/v1/categories/"+e.category.ID.Hex(), nil, "")
	assert.Equal(t, 200, status)
	assert.Equal(t, "Phones", out["data"].(map[string]interface{})["name"])
}
