package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specguard/specguard/internal/domain/analysis"
)

func TestExtractFunctions_JavaScript(t *testing.T) {
	content := `// adds two values
function addValues(a, b) {
  return a + b;
}

const multiplyValues = (a, b) => a * b;
`
	fns := analysis.ExtractFunctions(content)
	require.Len(t, fns, 2)

	assert.Equal(t, "addValues", fns[0].Name)
	assert.Equal(t, 2, fns[0].Line)
	assert.True(t, fns[0].Documented)

	assert.Equal(t, "multiplyValues", fns[1].Name)
	assert.False(t, fns[1].Documented)
}

func TestExtractFunctions_PythonAndGo(t *testing.T) {
	py := "def compute_total(items):\n    return sum(items)\n"
	fns := analysis.ExtractFunctions(py)
	require.Len(t, fns, 1)
	assert.Equal(t, "compute_total", fns[0].Name)

	goSrc := "// RenderReport formats a report.\nfunc RenderReport(r *Report) string {\n\treturn r.Name\n}\n"
	fns = analysis.ExtractFunctions(goSrc)
	require.Len(t, fns, 1)
	assert.Equal(t, "RenderReport", fns[0].Name)
	assert.True(t, fns[0].Documented)
}

func TestExtractFunctions_BodyEndsAtNextDeclaration(t *testing.T) {
	content := "function first() {\n  work();\n}\nfunction second() {\n  moreWork();\n}\n"
	fns := analysis.ExtractFunctions(content)
	require.Len(t, fns, 2)
	assert.Contains(t, fns[0].Body, "work();")
	assert.NotContains(t, fns[0].Body, "moreWork();")
}

func TestExtractClasses(t *testing.T) {
	content := "export class ReportService {}\ntype Report struct {\n}\n"
	assert.Equal(t, []string{"ReportService", "Report"}, analysis.ExtractClasses(content))
}

func TestExtractRoutes(t *testing.T) {
	content := `app.get('/reports', listReports);
router.post("/reports", createReport);
const x = compute();
http.HandleFunc("/health", healthHandler)
`
	routes := analysis.ExtractRoutes(content)
	require.Len(t, routes, 3)
	assert.Equal(t, 1, routes[0].Line)
	assert.Equal(t, 2, routes[1].Line)
	assert.Equal(t, 4, routes[2].Line)
}
