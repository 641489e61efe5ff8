package catalogdto

import (
	"testing"

	"eshop_backend/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductFormParse_DecimalIntegers(t *testing.T) {
	in, err := ProductForm{Name: "Áo", Description: "d", CountInStock: "010", NumReviews: "08", Price: "012.5"}.Parse()
	require.NoError(t, err)
	assert.Equal(t, 10, in.CountInStock)
	assert.Equal(t, 8, in.NumReviews)
	assert.Equal(t, 12.5, in.Price)
}

func TestProductFormParse_Defaults(t *testing.T) {
	in, err := ProductForm{Name: " Áo ", Description: "d"}.Parse()
	require.NoError(t, err)
	assert.Equal(t, "Áo", in.Name)
	assert.Zero(t, in.CountInStock)
	assert.Zero(t, in.NumReviews)
	assert.Zero(t, in.Price)
	assert.False(t, in.IsFeatured)
}

func TestProductFormParse_InvalidValues(t *testing.T) {
	cases := map[string]ProductForm{
		"countInStock": {CountInStock: "0x10"},
		"numReviews":   {NumReviews: "ten"},
		"price":        {Price: "abc"},
		"isFeatured":   {IsFeatured: "maybe"},
	}
	for field, form := range cases {
		_, err := form.Parse()
		require.Error(t, err, field)
		assert.Equal(t, common.StatusBadRequest, common.StatusOf(err), field)
		var appErr *common.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, map[string]string{"field": field}, appErr.Details)
	}
}

func TestProductFormParse_IsFeatured(t *testing.T) {
	in, err := ProductForm{IsFeatured: "true"}.Parse()
	require.NoError(t, err)
	assert.True(t, in.IsFeatured)
}
