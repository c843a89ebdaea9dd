package utils_test

import (
	"testing"

	"github.com/BalansDev/branch_accounting_app/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestCSVText_AlwaysQuotes(t *testing.T) {
	assert.Equal(t, `"plain"`, utils.CSVText("plain"))
	assert.Equal(t, `""`, utils.CSVText(""))
	assert.Equal(t, `"has, comma"`, utils.CSVText("has, comma"))
	assert.Equal(t, `"say ""hi"""`, utils.CSVText(`say "hi"`))
}

func TestCSVBuilder_WritesRows(t *testing.T) {
	var b utils.CSVBuilder
	b.WriteRow(utils.CSVText("Client"), utils.CSVText("Branch"), utils.CSVText("Outstanding"))
	b.WriteRow(utils.CSVText("Olmos Savdo"), utils.CSVText("Zarkent Filiali"), "2500")

	want := `"Client","Branch","Outstanding"` + "\n" +
		`"Olmos Savdo","Zarkent Filiali",2500` + "\n"
	assert.Equal(t, want, b.String())
}
