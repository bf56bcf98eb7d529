package polyroots

import (
	"encoding/json"
	"fmt"

	"github.com/njchilds90/polyroots/cas"
)

// ============================================================
// JSON tool interface
// ============================================================

// ToolRequest names a tool and its parameters. Polynomials are always
// passed as strings, rationals as strings such as "-3/2".
type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// HandleToolCall runs one stateless tool. Errors are reported in the
// response, never returned.
func HandleToolCall(req ToolRequest, opts ...Option) ToolResponse {
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	getStrings := func(key string) ([]string, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("param %s must be array", key)
		}
		result := make([]string, len(raw))
		for i, r := range raw {
			switch x := r.(type) {
			case string:
				result[i] = x
			case float64:
				result[i] = fmt.Sprint(x)
			default:
				return nil, fmt.Errorf("param %s[%d] must be string or number", key, i)
			}
		}
		return result, nil
	}
	getVector := func(key string) (Vector, error) {
		expr, err := getString(key)
		if err != nil {
			return nil, err
		}
		return ToVector(expr)
	}
	fail := func(err error) ToolResponse { return ToolResponse{Error: err.Error()} }

	switch req.Tool {
	case "normalize":
		expr, err := getString("expr")
		if err != nil {
			return fail(err)
		}
		out := Normalize(expr)
		return ToolResponse{Result: out, String: out}

	case "canonicalize":
		expr, err := getString("expr")
		if err != nil {
			return fail(err)
		}
		v, err := ToVector(expr)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: v.String(), String: v.String(), LaTeX: v.LaTeX()}

	case "to_vector":
		v, err := getVector("expr")
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: v.Strings(), String: v.String(), LaTeX: v.LaTeX()}

	case "to_expression":
		coeffs, err := getStrings("coeffs")
		if err != nil {
			return fail(err)
		}
		v, err := ParseVector(coeffs)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: ToExpression(v), String: ToExpression(v), LaTeX: v.LaTeX()}

	case "analyze_forms":
		expr, err := getString("expr")
		if err != nil {
			return fail(err)
		}
		if err := CheckDegree(expr, opts...); err != nil {
			return fail(err)
		}
		res, err := Analyze(expr, opts...)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: res, String: res.Polynomial}

	case "rational_zero_test":
		v, err := getVector("expr")
		if err != nil {
			return fail(err)
		}
		res, err := RationalZeroTest(v)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: res, String: fmt.Sprint(res.AllReduced.All())}

	case "descartes":
		v, err := getVector("expr")
		if err != nil {
			return fail(err)
		}
		s := Descartes(v)
		return ToolResponse{Result: s, String: s.NegatedExpression()}

	case "synthetic_divide":
		v, err := getVector("expr")
		if err != nil {
			return fail(err)
		}
		rs, err := getString("root")
		if err != nil {
			return fail(err)
		}
		r, err := ParseRational(rs)
		if err != nil {
			return fail(err)
		}
		d := Divide(v, r)
		return ToolResponse{Result: d, String: ToExpression(d.Quotient()), LaTeX: d.Quotient().LaTeX()}

	case "quadratic_roots":
		v, err := getVector("expr")
		if err != nil {
			return fail(err)
		}
		roots, err := cas.QuadraticRootsOf(v.Poly())
		if err != nil {
			return fail(err)
		}
		return ToolResponse{
			Result: roots[:],
			String: roots[0].String() + ", " + roots[1].String(),
			LaTeX:  roots[0].LaTeX() + ", " + roots[1].LaTeX(),
		}

	case "factor":
		v, err := getVector("expr")
		if err != nil {
			return fail(err)
		}
		f, err := cas.FactorPoly(v.Poly())
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: f.String(), String: f.String()}

	case "solve":
		expr, err := getString("expr")
		if err != nil {
			return fail(err)
		}
		rep, err := Solve(expr, opts...)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: rep, String: fmt.Sprint(rep.AllRationalRoots())}

	case "tool_spec":
		return ToolResponse{Result: json.RawMessage(ToolSpec())}
	}
	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ToolSpec describes every tool in MCP tool-list form.
func ToolSpec() string {
	tools := []map[string]interface{}{
		ts("normalize", "Normalize loosely typed input (implicit multiplication, whitespace, X)", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("canonicalize", "Expand to the canonical polynomial string", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("to_vector", "Coefficient vector, highest power first", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("to_expression", "Polynomial string from a coefficient vector", []string{"coeffs"}, map[string]string{"coeffs": "array"}),
		ts("analyze_forms", "Factors, special forms and roots readable from the input", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("rational_zero_test", "Possible rational roots p/q", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("descartes", "Descartes' rule of signs", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("synthetic_divide", "Divide by (x - root)", []string{"expr", "root"}, map[string]string{"expr": "string", "root": "string"}),
		ts("quadratic_roots", "Exact roots of a quadratic", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("factor", "Factor over the rationals", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("solve", "Run every stage and report all roots", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("tool_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
