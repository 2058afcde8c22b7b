package pagination

import (
	"errors"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestParse(t *testing.T) {
	opts := Options{DefaultPageSize: 12, MaxPageSize: 50}

	cases := []struct {
		name    string
		values  url.Values
		want    Params
		wantErr error
	}{
		{
			name:   "defaults when omitted",
			values: url.Values{},
			want:   Params{Page: 1, PageSize: 12},
		},
		{
			name:   "explicit values",
			values: url.Values{"page": {"3"}, "pageSize": {"20"}},
			want:   Params{Page: 3, PageSize: 20},
		},
		{
			name:   "page size clamped to max",
			values: url.Values{"pageSize": {"500"}},
			want:   Params{Page: 1, PageSize: 50},
		},
		{
			name:    "non-numeric page rejected",
			values:  url.Values{"page": {"abc"}},
			wantErr: ErrInvalidPage,
		},
		{
			name:    "zero page rejected",
			values:  url.Values{"page": {"0"}},
			wantErr: ErrInvalidPage,
		},
		{
			name:    "negative page size rejected",
			values:  url.Values{"pageSize": {"-1"}},
			wantErr: ErrInvalidPageSize,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.values, opts)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestParseFallsBackToPackageDefaults(t *testing.T) {
	got, err := Parse(url.Values{}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.PageSize != DefaultPageSize {
		t.Fatalf("expected default page size %d, got %d", DefaultPageSize, got.PageSize)
	}
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?page=2&pageSize=5", nil)
	got, err := FromRequest(r, Options{DefaultPageSize: 12, MaxPageSize: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Page != 2 || got.PageSize != 5 {
		t.Fatalf("unexpected params: %+v", got)
	}

	if _, err := FromRequest(nil, Options{}); err == nil {
		t.Fatalf("expected error for nil request")
	}
}
