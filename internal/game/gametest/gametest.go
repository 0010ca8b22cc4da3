// Package gametest provides rule tables, catalogs and characters for tests.
package gametest

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/ruins/internal/game/catalog"
	"github.com/cory-johannsen/ruins/internal/game/chara"
	"github.com/cory-johannsen/ruins/internal/game/dice"
	"github.com/cory-johannsen/ruins/internal/game/item"
	"github.com/cory-johannsen/ruins/internal/game/rules"
)

// CatalogYAML is the catalog used by Catalog.
const CatalogYAML = `
tiles:
  - {id: tile.floor, kind: ground}
  - {id: tile.grass, kind: ground}
  - {id: tile.water, kind: water}
walls:
  - {id: wall.stone, hp: 100}
decos:
  - {id: deco.bones}
items:
  - id: sword.short
    name: Short Sword
    kind: weapon
    slot: melee_weapon
    skill: sword
    eff: 3
    weight: 1.2
    gen_weight: 1
    gen_level: 1
    effect:
      kinds: [{type: melee, element: physical}]
      target_mode: enemy
      range: 1
      anim_kind: chara
      anim_img: "!damage-slash"
      sound: slash
  - id: bow.short
    name: Short Bow
    kind: weapon
    slot: ranged_weapon
    skill: bow
    eff: 2
    weight: 1.0
    gen_weight: 1
    gen_level: 2
    effect:
      kinds: [{type: ranged, element: physical}]
      target_mode: enemy
      range: 6
      anim_kind: shot
      anim_img_shot: "!arrow"
      sound: arrow
  - id: armor.leather
    name: Leather Armor
    kind: armor
    slot: body
    defence: 2
    weight: 4.0
    gen_weight: 1
  - id: potion.heal
    name: Healing Potion
    kind: potion
    eff: 10
    weight: 0.3
    gen_weight: 2
    variations: 3
    medical_effect:
      kinds: [{type: heal}]
      target_mode: self
      anim_kind: chara
      anim_img: "!heal"
      sound: drink
  - id: potion.sleep
    name: Sleeping Draught
    kind: potion
    eff: 2
    weight: 0.3
    gen_weight: 1
    medical_effect:
      kinds: [{type: status, status: asleep}]
      target_mode: self
  - id: food.bread
    name: Bread
    kind: food
    eff: 1
    nutrition: 300
    weight: 0.2
    gen_weight: 2
  - id: food.rotten
    name: Rotten Meat
    kind: food
    eff: 2
    nutrition: -100
    weight: 0.4
    medical_effect:
      kinds: [{type: status, status: poisoned}]
      target_mode: self
  - id: wand.sleep
    name: Wand of Sleep
    kind: magic_device
    eff: 1
    weight: 0.5
    charge: [2, 4]
    gen_weight: 0.5
    magical_effect:
      kinds: [{type: status, status: asleep}]
      target_mode: enemy
      range: 5
      anim_kind: shot
      sound: zap
  - id: wand.fire
    name: Wand of Fire
    kind: magic_device
    eff: 2
    weight: 0.5
    charge: [1, 3]
    gen_weight: 0.5
    gen_level: 3
    magical_effect:
      kinds: [{type: explosion, element: fire}]
      target_mode: any
      range: 5
      shape: circle
      size: 1
      anim_kind: chara
      anim_img: "!explosion"
      sound: explosion
  - id: dagger.throwing
    name: Throwing Dagger
    kind: throwing
    eff: 2
    weight: 0.3
    gen_weight: 1
    throw_effect:
      kinds: [{type: ranged, element: physical}]
      target_mode: enemy
      range: 5
      anim_kind: shot
      sound: throw
  - id: rock
    name: Rock
    kind: object
    weight: 2.0
    gen_weight: 1
charas:
  - id: player
    name: Adventurer
    race: human
    faction: player
    level: 1
    hp_dice: 3d4+8
    skills: {sword: 1, throwing: 1}
    base_attr: {str: 10, dex: 10, vit: 10, int: 10, wil: 10, cha: 10, spd: 10}
  - id: kobold
    name: Kobold
    race: monster
    faction: monster
    level: 1
    gen_weight: 2
    hp_dice: 2d4
    weapon: sword.short
    base_attr: {str: 7, dex: 8, vit: 6, int: 4, wil: 4, cha: 3, spd: 9}
  - id: goblin.archer
    name: Goblin Archer
    race: monster
    faction: monster
    level: 2
    gen_weight: 1
    gen_level: 2
    hp_dice: 2d6
    ranged: bow.short
    skills: {bow: 2}
    base_attr: {str: 8, dex: 11, vit: 7, int: 6, wil: 5, cha: 4, spd: 10}
  - id: villager
    name: Villager
    race: human
    faction: citizen
    level: 1
    hp_dice: 2d4
    base_attr: {str: 6, dex: 6, vit: 6, int: 8, wil: 6, cha: 9, spd: 8}
`

// Catalog returns a freshly parsed catalog. It panics on error.
func Catalog() *catalog.Catalog {
	c := catalog.New()
	if err := c.Parse([]byte(CatalogYAML)); err != nil {
		panic(err)
	}
	if err := c.CheckReferences(); err != nil {
		panic(err)
	}
	return c
}

// Rules returns a rule table suitable for tests.
func Rules() *rules.Rules {
	return &rules.Rules{
		Combat: rules.Combat{SkillBase: 8, DamageFactor: 0.5, EvasionFactor: 0.5, MinDamage: 1},
		Effect: rules.Effect{
			ThrowWeightToEffFactor: 0.5,
			ItemDrinkPowerFactor:   1.0,
			ItemEatPowerFactor:     0.5,
			ThrowRange:             5,
			HealFactor:             1.0,
			SleepTurnsFactor:       1.0,
			PoisonTurnsFactor:      2.0,
			SPRestoreFactor:        10,
		},
		Chara: rules.Chara{
			SPNutritionFactor:      10,
			SPMax:                  10000,
			SPDefault:              8000,
			SPHungry:               3000,
			SPWeak:                 1000,
			SPStarving:             0,
			SPPerTurn:              1,
			SPStarvingDamageFactor: 0.01,
			HPPerVit:               3,
		},
		Exp:    rules.Exp{Attack: 100, PerLevel: 1000},
		Magic:  rules.Magic{MagicDeviceBasePower: 100},
		Item:   rules.Item{QualityDice: "1d3-2", GenLevelMargin: 0},
		Map:    rules.Map{MaxItemForDraw: 2, ViewRadius: 6},
		NPCGen: rules.NPCGen{NPCsPerFloor: 4},
		Region: rules.Region{MaxDungeons: 2, DungeonKindWeights: rules.Weights{"ruin": 1, "cave": 1}},
		Factions: map[string]map[string]rules.Relation{
			"player": {"monster": rules.RelHostile, "citizen": rules.RelFriendly},
		},
		DungeonGen: map[rules.DungeonKind]rules.DungeonGen{
			"ruin": {
				ItemGenProbability:  0.05,
				MapSize:             [2]int{30, 20},
				FloorTile:           "tile.floor",
				WaterTile:           "tile.water",
				WaterProbability:    0.02,
				Wall:                "wall.stone",
				FloorRange:          [2]int{2, 3},
				MaxRooms:            6,
				RoomSize:            [2]int{3, 6},
				NPCRaceProbability:  rules.Weights{"monster": 1},
				ItemKindProbability: rules.Weights{"potion": 1, "food": 1, "weapon": 0.5},
				Music:               "ruin",
			},
			"cave": {
				ItemGenProbability: 0.03,
				MapSize:            [2]int{24, 16},
				FloorTile:          "tile.grass",
				Wall:               "wall.stone",
				FloorRange:         [2]int{1, 2},
				MaxRooms:           4,
				RoomSize:           [2]int{3, 5},
				NPCRaceProbability: rules.Weights{"monster": 1},
				Music:              "cave",
			},
		},
	}
}

// Roller returns a silent logged roller over src.
func Roller(src dice.Source) *dice.Roller {
	return dice.NewLoggedRoller(src, zap.NewNop())
}

// ItemGen returns an item generator over the given catalog and rules.
func ItemGen(cat *catalog.Catalog, r *rules.Rules, src dice.Source) *item.Generator {
	return item.NewGenerator(cat, r, Roller(src), zap.NewNop())
}

// CharaGen returns a character generator over the given catalog and rules.
func CharaGen(cat *catalog.Catalog, r *rules.Rules, src dice.Source) *chara.Generator {
	return chara.NewGenerator(cat, r, Roller(src), ItemGen(cat, r, src), zap.NewNop())
}

// Chara returns a character with every attribute set to attr and full HP.
func Chara(name, faction string, attr int, r *rules.Rules) *chara.Chara {
	c := &chara.Chara{
		Name:    name,
		Faction: faction,
		Level:   1,
		BaseAttr: catalog.Attributes{
			Str: attr, Dex: attr, Vit: attr, Int: attr, Wil: attr, Cha: attr, Spd: attr,
		},
		BaseHP: 20,
		SP:     r.Chara.SPDefault,
		MaxSP:  r.Chara.SPMax,
	}
	c.Update(r)
	c.HP = c.MaxHP
	return c
}
