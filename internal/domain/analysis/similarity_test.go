package analysis_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specguard/specguard/internal/domain/analysis"
)

// Three copy-pasted query helpers differing only in the table name.
const bodyA = `const rows = db.query("users");
const mapped = rows.map(toModel);
const filtered = mapped.filter(isActive);
const sorted = filtered.sort(byName);
return paginate(sorted, page, size);`

const bodyB = `const rows = db.query("accounts");
const mapped = rows.map(toModel);
const filtered = mapped.filter(isActive);
const sorted = filtered.sort(byName);
return paginate(sorted, page, size);`

const bodyC = `const rows = db.query("orders");
const mapped = rows.map(toModel);
const filtered = mapped.filter(isActive);
const sorted = filtered.sort(byName);
return paginate(sorted, page, size);`

const bodyOther = `const el = document.createElement("h1");
el.textContent = title;
container.appendChild(el);
applyTheme(el, currentTheme);
return el;`

func TestBodySimilarity(t *testing.T) {
	assert.Equal(t, 1.0, analysis.BodySimilarity(bodyA, bodyA))
	assert.Greater(t, analysis.BodySimilarity(bodyA, bodyB), 0.85)
	assert.Less(t, analysis.BodySimilarity(bodyA, bodyOther), 0.5)
}

func TestBodySimilarity_IgnoresCommentsAndCase(t *testing.T) {
	commented := "// fetch everything\n" + strings.ToUpper(bodyA)
	assert.Equal(t, 1.0, analysis.BodySimilarity(bodyA, commented))
}

func TestBodySimilarity_EmptyBodies(t *testing.T) {
	assert.Equal(t, 0.0, analysis.BodySimilarity("", bodyA))
}

func TestFindDuplicates_GroupsNearIdenticalFunctions(t *testing.T) {
	fns := []analysis.NamedBody{
		{Name: "a.js:loadUsers", Body: bodyA},
		{Name: "b.js:loadAccounts", Body: bodyB},
		{Name: "c.js:renderHeader", Body: bodyOther},
		{Name: "d.js:loadOrders", Body: bodyC},
	}

	groups := analysis.FindDuplicates(fns, 0.85)
	require.Len(t, groups, 1)
	require.Len(t, groups[0], 3)
	assert.Equal(t, "a.js:loadUsers", groups[0][0].Name)
	assert.Equal(t, "b.js:loadAccounts", groups[0][1].Name)
	assert.Equal(t, "d.js:loadOrders", groups[0][2].Name)
}

func TestFindDuplicates_TrivialBodiesIgnored(t *testing.T) {
	fns := []analysis.NamedBody{
		{Name: "a", Body: "return 1;"},
		{Name: "b", Body: "return 1;"},
	}
	assert.Empty(t, analysis.FindDuplicates(fns, 0.85))
}
