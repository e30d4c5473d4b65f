package reply

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const thoughtSchema = `{
  "type": "object",
  "required": ["content"],
  "properties": {
    "content": {"type": "string"}
  }
}`

const actionSchema = `{
  "type": "object",
  "required": ["name", "args"],
  "properties": {
    "name": {"type": "string"},
    "args": {"type": "object"}
  }
}`

const planSchema = `{
  "type": "object",
  "required": ["steps"],
  "properties": {
    "steps": {
      "type": "array",
      "items": {
        "anyOf": [
          {"type": "string"},
          {"type": "object", "required": ["id", "description"]}
        ]
      }
    }
  }
}`

const evaluationSchema = `{
  "type": "object",
  "required": ["goal_achieved"],
  "properties": {
    "goal_achieved": {"type": "boolean"},
    "confidence": {"type": "number"},
    "feedback": {"type": "string"}
  }
}`

var (
	thoughtValidator    = mustCompile("thought.json", thoughtSchema)
	actionValidator     = mustCompile("action.json", actionSchema)
	planValidator       = mustCompile("plan.json", planSchema)
	evaluationValidator = mustCompile("evaluation.json", evaluationSchema)
)

func mustCompile(name, schema string) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schema))
	if err != nil {
		panic(err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, doc); err != nil {
		panic(err)
	}
	compiled, err := c.Compile(name)
	if err != nil {
		panic(err)
	}
	return compiled
}
