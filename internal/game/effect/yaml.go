package effect

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/ruins/internal/game/status"
)

type kindSpec struct {
	Type    string `yaml:"type"`
	Element string `yaml:"element"`
	Status  string `yaml:"status"`
}

type effectSpec struct {
	Kinds       []kindSpec `yaml:"kinds"`
	TargetMode  string     `yaml:"target_mode"`
	PowerAdjust []float64  `yaml:"power_adjust"`
	Range       int        `yaml:"range"`
	Shape       string     `yaml:"shape"`
	Size        int        `yaml:"size"`
	AnimKind    string     `yaml:"anim_kind"`
	AnimImg     string     `yaml:"anim_img"`
	AnimImgShot string     `yaml:"anim_img_shot"`
	Sound       string     `yaml:"sound"`
}

var (
	targetModes = map[string]TargetMode{"": TargetNone, "none": TargetNone, "any": TargetAny, "enemy": TargetEnemy, "ally": TargetAlly, "self": TargetSelf}
	shapes      = map[string]Shape{"": OneTile, "one_tile": OneTile, "line": Line, "circle": Circle}
	animKinds   = map[string]AnimKind{"": AnimNone, "none": AnimNone, "chara": AnimChara, "shot": AnimShot}
	timed       = map[string]status.Kind{"asleep": status.KindAsleep, "poisoned": status.KindPoisoned}
)

// UnmarshalYAML decodes an effect written as
//
//	kinds: [{type: melee, element: physical}, {type: status, status: asleep}]
//	target_mode: enemy
//	shape: circle
//	size: 1
func (e *Effect) UnmarshalYAML(n *yaml.Node) error {
	var spec effectSpec
	if err := n.Decode(&spec); err != nil {
		return err
	}
	out := Effect{
		PowerAdjust: spec.PowerAdjust,
		Range:       spec.Range,
		Size:        spec.Size,
		AnimImg:     spec.AnimImg,
		AnimImgShot: spec.AnimImgShot,
		Sound:       spec.Sound,
	}
	var ok bool
	if out.TargetMode, ok = targetModes[spec.TargetMode]; !ok {
		return fmt.Errorf("line %d: unknown target_mode %q", n.Line, spec.TargetMode)
	}
	if out.Shape, ok = shapes[spec.Shape]; !ok {
		return fmt.Errorf("line %d: unknown shape %q", n.Line, spec.Shape)
	}
	if out.AnimKind, ok = animKinds[spec.AnimKind]; !ok {
		return fmt.Errorf("line %d: unknown anim_kind %q", n.Line, spec.AnimKind)
	}
	for _, ks := range spec.Kinds {
		k, err := ks.kind()
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		out.Kinds = append(out.Kinds, k)
	}
	*e = out
	return nil
}

func (ks kindSpec) kind() (Kind, error) {
	elem, err := ParseElement(ks.Element)
	if err != nil {
		return nil, err
	}
	switch ks.Type {
	case "melee":
		return Melee{Element: elem}, nil
	case "ranged":
		return Ranged{Element: elem}, nil
	case "explosion":
		return Explosion{Element: elem}, nil
	case "direct":
		return Direct{Element: elem}, nil
	case "heal":
		return Heal{}, nil
	case "restore_sp":
		return RestoreSP{}, nil
	case "status":
		s, ok := timed[ks.Status]
		if !ok {
			return nil, fmt.Errorf("effect: status kind must be asleep or poisoned, got %q", ks.Status)
		}
		return ApplyStatus{Status: s}, nil
	}
	return nil, fmt.Errorf("effect: unknown effect type %q", ks.Type)
}
