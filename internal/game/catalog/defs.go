package catalog

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/ruins/internal/game/dice"
	"github.com/cory-johannsen/ruins/internal/game/effect"
	"github.com/cory-johannsen/ruins/internal/game/skill"
)

// TileKind classifies a floor tile.
type TileKind string

const (
	TileGround TileKind = "ground"
	TileWater  TileKind = "water"
)

// TileDef is a floor tile definition.
type TileDef struct {
	ID   string   `yaml:"id"`
	Kind TileKind `yaml:"kind"`
}

func (d *TileDef) DefID() string { return d.ID }

// Validate checks the tile definition.
func (d *TileDef) Validate() error {
	if d.ID == "" {
		return errors.New("id must not be empty")
	}
	if d.Kind != TileGround && d.Kind != TileWater {
		return fmt.Errorf("kind must be ground or water, got %q", d.Kind)
	}
	return nil
}

// WallDef is a wall definition.
type WallDef struct {
	ID string `yaml:"id"`
	HP int    `yaml:"hp"`
}

func (d *WallDef) DefID() string { return d.ID }

// Validate checks the wall definition.
func (d *WallDef) Validate() error {
	if d.ID == "" {
		return errors.New("id must not be empty")
	}
	if d.HP < 0 {
		return errors.New("hp must be >= 0")
	}
	return nil
}

// DecoDef is a decoration definition.
type DecoDef struct {
	ID string `yaml:"id"`
}

func (d *DecoDef) DefID() string { return d.ID }

// Validate checks the decoration definition.
func (d *DecoDef) Validate() error {
	if d.ID == "" {
		return errors.New("id must not be empty")
	}
	return nil
}

// ItemKind classifies an item definition.
type ItemKind string

const (
	ItemWeapon      ItemKind = "weapon"
	ItemArmor       ItemKind = "armor"
	ItemPotion      ItemKind = "potion"
	ItemFood        ItemKind = "food"
	ItemMagicDevice ItemKind = "magic_device"
	ItemThrowing    ItemKind = "throwing"
	ItemObject      ItemKind = "object"
)

var validItemKinds = map[ItemKind]bool{
	ItemWeapon: true, ItemArmor: true, ItemPotion: true, ItemFood: true,
	ItemMagicDevice: true, ItemThrowing: true, ItemObject: true,
}

// EquipSlot is the equipment slot an item occupies.
type EquipSlot string

const (
	SlotNone         EquipSlot = ""
	SlotMeleeWeapon  EquipSlot = "melee_weapon"
	SlotRangedWeapon EquipSlot = "ranged_weapon"
	SlotBody         EquipSlot = "body"
)

// ItemDef is the static definition of an item.
type ItemDef struct {
	ID   string    `yaml:"id"`
	Name string    `yaml:"name"`
	Kind ItemKind  `yaml:"kind"`
	Slot EquipSlot `yaml:"slot"`
	// Skill is the weapon skill trained and used by this item.
	Skill      skill.Kind `yaml:"skill"`
	Eff        int        `yaml:"eff"`
	Defence    int        `yaml:"defence"`
	Weight     float64    `yaml:"weight"`
	Nutrition  int        `yaml:"nutrition"`
	GenWeight  float64    `yaml:"gen_weight"`
	GenLevel   int        `yaml:"gen_level"`
	Variations int        `yaml:"variations"`
	// Charge is the inclusive range a new device's charge count is drawn from.
	Charge        [2]int         `yaml:"charge"`
	Img           string         `yaml:"img"`
	Effect        *effect.Effect `yaml:"effect"`
	ThrowEffect   *effect.Effect `yaml:"throw_effect"`
	MedicalEffect *effect.Effect `yaml:"medical_effect"`
	MagicalEffect *effect.Effect `yaml:"magical_effect"`
}

func (d *ItemDef) DefID() string { return d.ID }

// HasCharge reports whether items of this definition carry a charge count.
func (d *ItemDef) HasCharge() bool { return d.Charge[1] > 0 }

// Validate checks that the ItemDef satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid; otherwise every violation is reported.
func (d *ItemDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if !validItemKinds[d.Kind] {
		errs = append(errs, fmt.Errorf("kind %q is not a known item kind", d.Kind))
	}
	if d.Weight < 0 {
		errs = append(errs, errors.New("weight must be >= 0"))
	}
	if d.Eff < 0 {
		errs = append(errs, errors.New("eff must be >= 0"))
	}
	if d.GenWeight < 0 {
		errs = append(errs, errors.New("gen_weight must be >= 0"))
	}
	if d.Charge[0] < 0 || d.Charge[0] > d.Charge[1] {
		errs = append(errs, fmt.Errorf("charge range %v must satisfy 0 <= min <= max", d.Charge))
	}
	switch d.Kind {
	case ItemWeapon:
		if d.Slot != SlotMeleeWeapon && d.Slot != SlotRangedWeapon {
			errs = append(errs, errors.New("weapon slot must be melee_weapon or ranged_weapon"))
		}
	case ItemArmor:
		if d.Slot != SlotBody {
			errs = append(errs, errors.New("armor slot must be body"))
		}
	case ItemPotion:
		if d.MedicalEffect == nil {
			errs = append(errs, errors.New("potion requires medical_effect"))
		}
	case ItemMagicDevice:
		if d.MagicalEffect == nil {
			errs = append(errs, errors.New("magic_device requires magical_effect"))
		}
		if !d.HasCharge() {
			errs = append(errs, errors.New("magic_device requires a charge range"))
		}
	}
	return errors.Join(errs...)
}

// Attributes are the primary character attributes.
type Attributes struct {
	Str int `yaml:"str"`
	Dex int `yaml:"dex"`
	Vit int `yaml:"vit"`
	Int int `yaml:"int"`
	Wil int `yaml:"wil"`
	Cha int `yaml:"cha"`
	Spd int `yaml:"spd"`
}

// CharaDef is a character template. NPCs are generated from it.
type CharaDef struct {
	ID        string             `yaml:"id"`
	Name      string             `yaml:"name"`
	Race      string             `yaml:"race"`
	Faction   string             `yaml:"faction"`
	Level     int                `yaml:"level"`
	GenWeight float64            `yaml:"gen_weight"`
	GenLevel  int                `yaml:"gen_level"`
	BaseAttr  Attributes         `yaml:"base_attr"`
	HPDice    string             `yaml:"hp_dice"`
	Skills    map[skill.Kind]int `yaml:"skills"`
	Weapon    string             `yaml:"weapon"`
	Ranged    string             `yaml:"ranged"`
	Items     []string           `yaml:"items"`
	Img       string             `yaml:"img"`
}

func (d *CharaDef) DefID() string { return d.ID }

// Validate checks the template's invariants.
//
// Postcondition: Returns nil iff ID and Name are non-empty, Level >= 1, every
// attribute is >= 1 and HPDice (when set) parses.
func (d *CharaDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if d.Level < 1 {
		errs = append(errs, errors.New("level must be >= 1"))
	}
	if d.Faction == "" {
		errs = append(errs, errors.New("faction must not be empty"))
	}
	a := d.BaseAttr
	if min(a.Str, a.Dex, a.Vit, a.Int, a.Wil, a.Cha, a.Spd) < 1 {
		errs = append(errs, errors.New("every base attribute must be >= 1"))
	}
	if d.HPDice != "" {
		if _, err := dice.Parse(d.HPDice); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// file is the layout of one catalog YAML file.
type file struct {
	Tiles  []*TileDef  `yaml:"tiles"`
	Walls  []*WallDef  `yaml:"walls"`
	Decos  []*DecoDef  `yaml:"decos"`
	Items  []*ItemDef  `yaml:"items"`
	Charas []*CharaDef `yaml:"charas"`
}

