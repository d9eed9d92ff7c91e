package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Cantidad Vendida", TitleCase("cantidad vendida"))
	assert.Equal(t, "Categoría", TitleCase("categoría"))
	assert.Equal(t, "", TitleCase(""))
	assert.Equal(t, "Ya Mayúscula", TitleCase("Ya mayúscula"))
}

func TestCreatePaginationDefaults(t *testing.T) {
	p := CreatePagination(45, 0, 0)
	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, 10, p.PageSize)
	assert.Equal(t, 5, p.TotalPages)
	assert.Equal(t, 0, p.Offset())
}

func TestPaginationOffset(t *testing.T) {
	p := CreatePagination(45, 3, 10)
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, 5, p.TotalPages)
}
