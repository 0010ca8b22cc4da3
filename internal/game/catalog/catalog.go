// Package catalog is the read-only object catalog: definitions of tiles, walls,
// decorations, items and character templates, loaded from YAML.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/ruins/internal/game/skill"
)

// Catalog holds every object definition.
type Catalog struct {
	Tiles  *Table[*TileDef]
	Walls  *Table[*WallDef]
	Decos  *Table[*DecoDef]
	Items  *Table[*ItemDef]
	Charas *Table[*CharaDef]
}

// New returns an empty Catalog.
//
// Postcondition: every table is initialised and empty.
func New() *Catalog {
	return &Catalog{
		Tiles:  newTable[*TileDef]("tile"),
		Walls:  newTable[*WallDef]("wall"),
		Decos:  newTable[*DecoDef]("deco"),
		Items:  newTable[*ItemDef]("item"),
		Charas: newTable[*CharaDef]("chara"),
	}
}

// Parse decodes one catalog document and registers its definitions.
//
// Postcondition: on error, definitions registered before the failing one remain.
func (c *Catalog) Parse(data []byte) error {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing catalog: %w", err)
	}
	for _, d := range f.Tiles {
		if err := c.Tiles.Register(d); err != nil {
			return err
		}
	}
	for _, d := range f.Walls {
		if err := c.Walls.Register(d); err != nil {
			return err
		}
	}
	for _, d := range f.Decos {
		if err := c.Decos.Register(d); err != nil {
			return err
		}
	}
	for _, d := range f.Items {
		if err := c.Items.Register(d); err != nil {
			return err
		}
	}
	for _, d := range f.Charas {
		if err := c.Charas.Register(d); err != nil {
			return err
		}
	}
	return nil
}

// CheckReferences verifies that every id referenced by a character template
// resolves to an item of a compatible kind.
//
// Postcondition: Returns nil iff all references resolve; otherwise every broken
// reference is reported.
func (c *Catalog) CheckReferences() error {
	var errs []error
	for _, id := range c.Charas.IDs() {
		d := c.Charas.MustGet(id)
		if d.Weapon != "" {
			if it, ok := c.Items.Get(d.Weapon); !ok || it.Slot != SlotMeleeWeapon {
				errs = append(errs, fmt.Errorf("chara %q: weapon %q is not a melee weapon", id, d.Weapon))
			}
		}
		if d.Ranged != "" {
			if it, ok := c.Items.Get(d.Ranged); !ok || it.Slot != SlotRangedWeapon {
				errs = append(errs, fmt.Errorf("chara %q: ranged %q is not a ranged weapon", id, d.Ranged))
			}
		}
		for _, item := range d.Items {
			if _, ok := c.Items.Get(item); !ok {
				errs = append(errs, fmt.Errorf("chara %q: item %q: %w", id, item, ErrUnknownObject))
			}
		}
	}
	return errors.Join(errs...)
}

// Load reads every *.yaml and *.yml file in dir into a new Catalog.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a Catalog whose references resolve, or the first error.
func Load(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading catalog dir %q: %w", dir, err)
	}
	c := New()
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		if err := c.Parse(data); err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
	}
	if err := c.CheckReferences(); err != nil {
		return nil, err
	}
	return c, nil
}

// IsGround reports whether tile id names a ground tile. Unknown ids panic.
func (c *Catalog) IsGround(tileID string) bool {
	return c.Tiles.MustGet(tileID).Kind == TileGround
}

// WeaponSkill returns the skill used with an item, BareHands for nil.
func (c *Catalog) WeaponSkill(d *ItemDef) skill.Kind {
	if d == nil {
		return skill.BareHands
	}
	return d.Skill
}
