// Package reply turns raw model replies into paradigm records.
//
// A reply that is not JSON fails with entity.InvalidModelOutputError; JSON
// of the wrong shape fails with entity.StructuralMismatchError. Both carry
// the raw reply.
package reply

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"paradigm-agent/internal/domain/entity"

	"github.com/kaptinlin/jsonrepair"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

type Options struct {
	// RepairJSON retries unparseable replies once after jsonrepair.
	RepairJSON bool
}

type Decoder struct {
	repair bool
}

func NewDecoder(opts Options) *Decoder {
	return &Decoder{repair: opts.RepairJSON}
}

func (d *Decoder) Thought(raw string) (entity.Thought, error) {
	doc, err := d.decode(entity.StageThought, raw, thoughtValidator)
	if err != nil {
		return entity.Thought{}, err
	}
	return entity.Thought{Content: doc["content"].(string)}, nil
}

func (d *Decoder) Action(raw string) (entity.Action, error) {
	doc, err := d.decode(entity.StageAction, raw, actionValidator)
	if err != nil {
		return entity.Action{}, err
	}
	return entity.Action{
		Name: doc["name"].(string),
		Args: doc["args"].(map[string]any),
	}, nil
}

// Plan decodes a plan reply. Steps given as {"id", "description"} objects
// are flattened to "Step {id}: {description}".
func (d *Decoder) Plan(raw string) (entity.Plan, error) {
	doc, err := d.decode(entity.StagePlan, raw, planValidator)
	if err != nil {
		return entity.Plan{}, err
	}

	steps, err := normalizeSteps(doc["steps"].([]any))
	if err != nil {
		return entity.Plan{}, &entity.StructuralMismatchError{Stage: entity.StagePlan, Raw: raw, Err: err}
	}
	return entity.Plan{Steps: steps}, nil
}

func (d *Decoder) Evaluation(raw string) (entity.Evaluation, error) {
	doc, err := d.decode(entity.StageEvaluation, raw, evaluationValidator)
	if err != nil {
		return entity.Evaluation{}, err
	}

	eval := entity.Evaluation{GoalAchieved: doc["goal_achieved"].(bool)}
	if n, ok := doc["confidence"].(json.Number); ok {
		eval.Confidence, _ = n.Float64()
	}
	if s, ok := doc["feedback"].(string); ok {
		eval.Feedback = s
	}
	return eval, nil
}

func (d *Decoder) decode(stage entity.Stage, raw string, schema *jsonschema.Schema) (map[string]any, error) {
	doc, err := parseJSON(raw)
	if err != nil && d.repair {
		// repair can turn prose into a bare JSON string; only an object counts
		if repaired, repairErr := jsonrepair.JSONRepair(raw); repairErr == nil {
			if repairedDoc, parseErr := parseJSON(repaired); parseErr == nil {
				if _, ok := repairedDoc.(map[string]any); ok {
					doc, err = repairedDoc, nil
				}
			}
		}
	}
	if err != nil {
		return nil, &entity.InvalidModelOutputError{Stage: stage, Raw: raw, Err: err}
	}

	if err := schema.Validate(doc); err != nil {
		return nil, &entity.StructuralMismatchError{Stage: stage, Raw: raw, Err: err}
	}
	return doc.(map[string]any), nil
}

func parseJSON(raw string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level JSON value")
	}
	return doc, nil
}

func normalizeSteps(raw []any) ([]string, error) {
	steps := make([]string, 0, len(raw))
	if len(raw) == 0 {
		return steps, nil
	}

	if _, structured := raw[0].(map[string]any); !structured {
		for i, item := range raw {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("step %d is not a string", i+1)
			}
			steps = append(steps, s)
		}
		return steps, nil
	}

	for i, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("step %d is not an object", i+1)
		}
		steps = append(steps, fmt.Sprintf("Step %s: %s", scalar(obj["id"]), scalar(obj["description"])))
	}
	return steps, nil
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
