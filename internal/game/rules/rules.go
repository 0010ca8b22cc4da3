// Package rules holds the numeric rule table: the tuning constants consulted by
// combat, consumption, item and dungeon generation. A Rules value is read-only
// after Load.
package rules

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DungeonKind names a family of auto-generated dungeons.
type DungeonKind string

// DefaultDungeonKind is used for sites that carry no dungeon kind of their own.
const DefaultDungeonKind DungeonKind = "ruin"

// Relation is the attitude of one faction toward another.
type Relation int

const (
	RelAlly Relation = iota
	RelFriendly
	RelNeutral
	RelHostile
)

var relationNames = map[string]Relation{
	"ally":     RelAlly,
	"friendly": RelFriendly,
	"neutral":  RelNeutral,
	"hostile":  RelHostile,
}

func (r Relation) String() string {
	for name, v := range relationNames {
		if v == r {
			return name
		}
	}
	return "unknown"
}

// UnmarshalYAML decodes a relation name.
func (r *Relation) UnmarshalYAML(n *yaml.Node) error {
	v, ok := relationNames[strings.ToLower(n.Value)]
	if !ok {
		return fmt.Errorf("line %d: unknown relation %q", n.Line, n.Value)
	}
	*r = v
	return nil
}

// Weights maps a key to a relative selection weight.
type Weights map[string]float64

// Sorted returns the keys in lexical order with their weights, so that weighted
// draws do not depend on map iteration order.
func (w Weights) Sorted() ([]string, []float64) {
	keys := make([]string, 0, len(w))
	for k := range w {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	weights := make([]float64, len(keys))
	for i, k := range keys {
		weights[i] = w[k]
	}
	return keys, weights
}

// Combat holds attack resolution constants.
type Combat struct {
	SkillBase     float64 `yaml:"skill_base"`
	DamageFactor  float64 `yaml:"damage_factor"`
	EvasionFactor float64 `yaml:"evasion_factor"`
	MinDamage     int     `yaml:"min_damage"`
}

// Effect holds item-use and effect constants.
type Effect struct {
	ThrowWeightToEffFactor float64 `yaml:"throw_weight_to_eff_factor"`
	ItemDrinkPowerFactor   float64 `yaml:"item_drink_power_factor"`
	ItemEatPowerFactor     float64 `yaml:"item_eat_power_factor"`
	ThrowRange             int     `yaml:"throw_range"`
	HealFactor             float64 `yaml:"heal_factor"`
	SleepTurnsFactor       float64 `yaml:"sleep_turns_factor"`
	PoisonTurnsFactor      float64 `yaml:"poison_turns_factor"`
	SPRestoreFactor        float64 `yaml:"sp_restore_factor"`
}

// Chara holds character constants, chiefly satiety (SP).
type Chara struct {
	SPNutritionFactor      float64 `yaml:"sp_nutrition_factor"`
	SPMax                  int     `yaml:"sp_max"`
	SPDefault              int     `yaml:"sp_default"`
	SPHungry               int     `yaml:"sp_hungry"`
	SPWeak                 int     `yaml:"sp_weak"`
	SPStarving             int     `yaml:"sp_starving"`
	SPPerTurn              int     `yaml:"sp_per_turn"`
	SPStarvingDamageFactor float64 `yaml:"sp_starving_damage_factor"`
	HPPerVit               int     `yaml:"hp_per_vit"`
}

// Exp holds experience constants.
type Exp struct {
	Attack   int `yaml:"attack"`
	PerLevel int `yaml:"per_level"`
}

// Magic holds magic device constants.
type Magic struct {
	MagicDeviceBasePower float64 `yaml:"magic_device_base_power"`
}

// Item holds item generation constants.
type Item struct {
	QualityDice    string `yaml:"quality_dice"`
	GenLevelMargin int    `yaml:"gen_level_margin"`
}

// Map holds map presentation constants.
type Map struct {
	MaxItemForDraw int `yaml:"max_item_for_draw"`
	ViewRadius     int `yaml:"view_radius"`
}

// NPCGen holds NPC population constants.
type NPCGen struct {
	NPCsPerFloor int `yaml:"npcs_per_floor"`
}

// Region holds region-level generation constants.
type Region struct {
	MaxDungeons        int     `yaml:"max_dungeons"`
	DungeonKindWeights Weights `yaml:"dungeon_kind_weights"`
	// MapSize is the width and height of a new region map.
	MapSize [2]int `yaml:"map_size"`
	// Tile is the ground tile a new region map is filled with.
	Tile  string `yaml:"tile"`
	Music string `yaml:"music"`
}

// DungeonGen is the generation recipe for one dungeon kind.
type DungeonGen struct {
	ItemGenProbability  float64 `yaml:"item_gen_probability"`
	MapSize             [2]int  `yaml:"map_size"`
	FloorTile           string  `yaml:"floor_tile"`
	WaterTile           string  `yaml:"water_tile"`
	WaterProbability    float64 `yaml:"water_probability"`
	Wall                string  `yaml:"wall"`
	FloorRange          [2]int  `yaml:"floor_range"`
	MaxRooms            int     `yaml:"max_rooms"`
	RoomSize            [2]int  `yaml:"room_size"`
	NPCRaceProbability  Weights `yaml:"npc_race_probability"`
	ItemKindProbability Weights `yaml:"item_kind_probability"`
	Music               string  `yaml:"music"`
}

// Rules is the complete rule table.
type Rules struct {
	Combat     Combat                         `yaml:"combat"`
	Effect     Effect                         `yaml:"effect"`
	Chara      Chara                          `yaml:"chara"`
	Exp        Exp                            `yaml:"exp"`
	Magic      Magic                          `yaml:"magic"`
	Item       Item                           `yaml:"item"`
	Map        Map                            `yaml:"map"`
	NPCGen     NPCGen                         `yaml:"npc_gen"`
	Region     Region                         `yaml:"region"`
	Factions   map[string]map[string]Relation `yaml:"factions"`
	DungeonGen map[DungeonKind]DungeonGen     `yaml:"dungeon_gen"`
}

// Dungeon returns the generation recipe for kind.
func (r *Rules) Dungeon(kind DungeonKind) (DungeonGen, bool) {
	d, ok := r.DungeonGen[kind]
	return d, ok
}

// Relation returns how faction a regards faction b. Identical factions are
// allies; pairs missing from the table are neutral. The table is consulted in
// both directions.
func (r *Rules) Relation(a, b string) Relation {
	if a == b {
		return RelAlly
	}
	if rel, ok := r.Factions[a][b]; ok {
		return rel
	}
	if rel, ok := r.Factions[b][a]; ok {
		return rel
	}
	return RelNeutral
}

// Validate checks the table's structural invariants and returns every violation.
// Dungeon item generation probabilities are not range-checked here; the map
// populator guards them at use.
//
// Postcondition: Returns nil if the table is usable, or an error naming all violations.
func (r *Rules) Validate() error {
	var errs []string
	positive := map[string]float64{
		"combat.skill_base":                 r.Combat.SkillBase,
		"combat.damage_factor":              r.Combat.DamageFactor,
		"effect.throw_weight_to_eff_factor": r.Effect.ThrowWeightToEffFactor,
		"effect.item_drink_power_factor":    r.Effect.ItemDrinkPowerFactor,
		"effect.item_eat_power_factor":      r.Effect.ItemEatPowerFactor,
		"chara.sp_nutrition_factor":         r.Chara.SPNutritionFactor,
		"magic.magic_device_base_power":     r.Magic.MagicDeviceBasePower,
	}
	names := make([]string, 0, len(positive))
	for name := range positive {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if positive[name] <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be > 0, got %v", name, positive[name]))
		}
	}
	if r.Chara.SPMax <= 0 {
		errs = append(errs, fmt.Sprintf("chara.sp_max must be > 0, got %d", r.Chara.SPMax))
	}
	if r.Chara.SPDefault > r.Chara.SPMax {
		errs = append(errs, "chara.sp_default must not exceed chara.sp_max")
	}
	if r.Exp.PerLevel <= 0 {
		errs = append(errs, fmt.Sprintf("exp.per_level must be > 0, got %d", r.Exp.PerLevel))
	}
	if r.Map.MaxItemForDraw < 0 {
		errs = append(errs, "map.max_item_for_draw must not be negative")
	}
	if _, ok := r.DungeonGen[DefaultDungeonKind]; !ok {
		errs = append(errs, fmt.Sprintf("dungeon_gen must define %q", DefaultDungeonKind))
	}
	kinds := make([]string, 0, len(r.DungeonGen))
	for k := range r.DungeonGen {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		d := r.DungeonGen[DungeonKind(k)]
		if d.MapSize[0] < 5 || d.MapSize[1] < 5 {
			errs = append(errs, fmt.Sprintf("dungeon_gen.%s.map_size must be at least 5x5", k))
		}
		if d.FloorTile == "" || d.Wall == "" {
			errs = append(errs, fmt.Sprintf("dungeon_gen.%s must name floor_tile and wall", k))
		}
		if d.FloorRange[0] < 1 || d.FloorRange[1] < d.FloorRange[0] {
			errs = append(errs, fmt.Sprintf("dungeon_gen.%s.floor_range must satisfy 1 <= min <= max", k))
		}
	}
	for k := range r.Region.DungeonKindWeights {
		if _, ok := r.DungeonGen[DungeonKind(k)]; !ok {
			errs = append(errs, fmt.Sprintf("region.dungeon_kind_weights names unknown dungeon kind %q", k))
		}
	}
	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("rules validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Parse decodes a rule table from YAML, rejecting unknown fields.
//
// Postcondition: Returns a validated *Rules or a non-nil error.
func Parse(data []byte) (*Rules, error) {
	var r Rules
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Load reads and parses the rule table at path.
//
// Precondition: path must be a readable YAML file.
// Postcondition: Returns a validated *Rules or a non-nil error.
func Load(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules %q: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}
