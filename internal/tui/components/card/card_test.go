package card

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sodam-app/sodam/internal/repository"
)

func TestRender(t *testing.T) {
	status := repository.Status{Level: "Lv.2", Name: "Mochi", Period: "2025.01.21 ~", Entries: 12, Max: 30}

	out := Render(status, false)
	assert.Contains(t, out, "Lv.2 Mochi")
	assert.Contains(t, out, "2025.01.21 ~")
	assert.Contains(t, out, "12 / 30 happinesses")
	assert.Contains(t, out, "not yet written today")

	assert.Contains(t, Render(status, true), "written today ✓")
}

func TestRender_ZeroCapacity(t *testing.T) {
	assert.NotPanics(t, func() {
		Render(repository.Status{Level: "Lv.0"}, false)
	})
}
