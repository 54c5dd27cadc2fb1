package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"delicassy/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func jsonRequest(t *testing.T, body interface{}) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/test", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestProperty_FragilityRangeValidation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("fragility outside 1..5 is rejected", prop.ForAll(
		func(fragility int) bool {
			req := jsonRequest(t, map[string]interface{}{
				"title":            "Vase",
				"slug":             "vase",
				"description":      "Blown glass",
				"category":         "glassware",
				"price":            10,
				"stock":            1,
				"fragility_rating": fragility,
			})

			var product domain.Product
			err := DecodeAndValidate(req, &product)

			if fragility >= 1 && fragility <= 5 {
				return err == nil
			}
			return err != nil
		},
		gen.IntRange(-10, 15),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_RequiredCategoryFields(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("missing required fields are rejected", prop.ForAll(
		func(includeName bool, includeSlug bool) bool {
			body := map[string]interface{}{}
			if includeName {
				body["name"] = "Glassware"
			}
			if includeSlug {
				body["slug"] = "glassware"
			}

			var category domain.Category
			err := DecodeAndValidate(jsonRequest(t, body), &category)

			if includeName && includeSlug {
				return err == nil
			}
			return err != nil && len(FormatValidationErrors(err)) > 0
		},
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestReviewProductIDMustBeObjectID(t *testing.T) {
	var review domain.Review
	err := DecodeAndValidate(jsonRequest(t, map[string]interface{}{
		"product_id": "not-an-id",
		"user_name":  "ann",
		"rating":     5,
	}), &review)
	require.Error(t, err)

	errs := FormatValidationErrors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "Review.product_id", errs[0].Field)
	assert.Equal(t, "Invalid id", errs[0].Message)

	review = domain.Review{}
	err = DecodeAndValidate(jsonRequest(t, map[string]interface{}{
		"product_id": primitive.NewObjectID().Hex(),
		"user_name":  "ann",
		"rating":     5,
	}), &review)
	assert.NoError(t, err)
}

func TestCartItemsAreValidatedElementwise(t *testing.T) {
	var cart domain.Cart
	err := DecodeAndValidate(jsonRequest(t, map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": "p1", "quantity": 1},
			{"product_id": "p2", "quantity": 0},
		},
	}), &cart)
	require.Error(t, err)

	errs := FormatValidationErrors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "Cart.items[1].quantity", errs[0].Field)
}

func TestDecodeAndValidateRejectsEmptyAndMalformedBodies(t *testing.T) {
	var category domain.Category

	req := httptest.NewRequest("POST", "/test", http.NoBody)
	assert.ErrorIs(t, DecodeAndValidate(req, &category), ErrEmptyBody)

	req = httptest.NewRequest("POST", "/test", strings.NewReader("{not json"))
	err := DecodeAndValidate(req, &category)
	require.Error(t, err)
	assert.Empty(t, FormatValidationErrors(err))

	w := httptest.NewRecorder()
	RespondWithDecodeError(w, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestRespondWithDecodeErrorListsFields(t *testing.T) {
	var category domain.Category
	err := DecodeAndValidate(jsonRequest(t, map[string]interface{}{"name": "x"}), &category)
	require.Error(t, err)

	w := httptest.NewRecorder()
	RespondWithDecodeError(w, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "validation failed", resp.Error.Message)
	assert.Contains(t, resp.Error.Details, "validation_errors")
}
