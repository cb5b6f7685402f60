package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/tienda-admin-api/pkg/slug"
)

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Camisas de Verano", "camisas-de-verano"},
		{"Pantalón Niño", "pantalon-nino"},
		{"  espacios   extra  ", "espacios-extra"},
		{"Café & Té 100%", "cafe-te-100"},
		{"UPPER", "upper"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, slug.Make(tc.in), "slug de %q", tc.in)
	}
}
