// Copyright (c) 2026 RateUp. All rights reserved.

package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected Params
	}{
		{"defaults", "", Params{Page: 1, PageSize: 20}},
		{"explicit", "?page=3&pageSize=10", Params{Page: 3, PageSize: 10}},
		{"limit alias", "?limit=5", Params{Page: 1, PageSize: 5}},
		{"negative page", "?page=-2", Params{Page: 1, PageSize: 20}},
		{"garbage", "?page=abc&pageSize=xyz", Params{Page: 1, PageSize: 20}},
		{"capped size", "?pageSize=1000", Params{Page: 1, PageSize: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/reviews"+tt.query, nil)
			assert.Equal(t, tt.expected, FromRequest(request))
		})
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, PageSize: 20}.Offset())
	assert.Equal(t, 40, Params{Page: 3, PageSize: 20}.Offset())
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(Params{Page: 2, PageSize: 10}, 31)

	assert.Equal(t, 4, meta.TotalPages)
	assert.Equal(t, 31, meta.Total)
	assert.Equal(t, 0, NewMeta(Params{Page: 1, PageSize: 10}, 0).TotalPages)
}
