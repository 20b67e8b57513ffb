package data

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/rpgcore/internal/model"
)

//go:embed defaults/*.yaml
var defaultFS embed.FS

// Tables bundles every provider loaded from data files.
type Tables struct {
	Items     *ItemTable
	Sets      *SetTable
	Races     *RaceTable
	Classes   *ClassRules
	Reactions *ReactionTable
	Mobs      *MobTable
}

// NewTables creates empty tables. nextItemID allocates item instance handles.
func NewTables(nextItemID func() uint32) *Tables {
	return &Tables{
		Items:     NewItemTable(nextItemID),
		Sets:      NewSetTable(),
		Races:     NewRaceTable(),
		Classes:   NewClassRules(),
		Reactions: NewReactionTable(),
		Mobs:      NewMobTable(),
	}
}

// LoadDefaults loads the tables bundled with the binary.
func LoadDefaults(nextItemID func() uint32) (*Tables, error) {
	sub, err := fs.Sub(defaultFS, "defaults")
	if err != nil {
		return nil, fmt.Errorf("opening embedded defaults: %w", err)
	}
	return LoadFS(sub, nextItemID)
}

// LoadDir loads tables from a directory on disk.
func LoadDir(dir string, nextItemID func() uint32) (*Tables, error) {
	return LoadFS(os.DirFS(dir), nextItemID)
}

// LoadFS loads items.yaml, sets.yaml, races.yaml, classes.yaml, reactions.yaml and mobs.yaml
// from fsys. A missing file leaves its table empty.
func LoadFS(fsys fs.FS, nextItemID func() uint32) (*Tables, error) {
	t := NewTables(nextItemID)

	steps := []struct {
		file string
		load func([]byte) (int, error)
	}{
		{"items.yaml", t.loadItems},
		{"sets.yaml", t.loadSets},
		{"races.yaml", t.loadRaces},
		{"classes.yaml", t.loadClasses},
		{"reactions.yaml", t.loadReactions},
		{"mobs.yaml", t.loadMobs},
	}

	for _, s := range steps {
		raw, err := fs.ReadFile(fsys, s.file)
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("data file not found, table left empty", "file", s.file)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.file, err)
		}
		n, err := s.load(raw)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", s.file, err)
		}
		slog.Info("loaded data table", "file", s.file, "count", n)
	}

	return t, nil
}

// --- raw YAML definitions ---

type itemDef struct {
	ID            int32              `yaml:"id"`
	Name          string             `yaml:"name"`
	Type          string             `yaml:"type"`
	WeaponKind    string             `yaml:"weapon_kind"`
	Element       string             `yaml:"element"`
	Rarity        int32              `yaml:"rarity"`
	RequiredClass string             `yaml:"required_class"`
	MinLevel      int32              `yaml:"min_level"`
	Set           string             `yaml:"set"`
	FabaoSlot     int                `yaml:"fabao_slot"`
	Passives      []string           `yaml:"passives"`
	Stats         map[string]float64 `yaml:"stats"`
}

type setTierDef struct {
	Count    int                `yaml:"count"`
	Stats    map[string]float64 `yaml:"stats"`
	Passives []string           `yaml:"passives"`
}

type setDef struct {
	ID    string       `yaml:"id"`
	Tiers []setTierDef `yaml:"tiers"`
}

type raceDef struct {
	Race       string   `yaml:"race"`
	Base       float64  `yaml:"base"`
	Attributes []string `yaml:"attributes"`
}

type classDef struct {
	Class            string   `yaml:"class"`
	ForbiddenWeapons []string `yaml:"forbidden_weapons"`
}

type classesFile struct {
	QualificationThreshold *int32     `yaml:"qualification_threshold"`
	Classes                []classDef `yaml:"classes"`
}

type reactionDef struct {
	Mark             string        `yaml:"mark"`
	Incoming         string        `yaml:"incoming"`
	Name             string        `yaml:"name"`
	Kind             string        `yaml:"kind"`
	DamageMultiplier float64       `yaml:"damage_multiplier"`
	DamageBonus      float64       `yaml:"damage_bonus"`
	Buff             string        `yaml:"buff"`
	BuffValue        float64       `yaml:"buff_value"`
	BuffMultiplier   bool          `yaml:"buff_multiplier"`
	BuffDuration     time.Duration `yaml:"buff_duration"`
	ShieldFraction   float64       `yaml:"shield_fraction"`
}

type mobDef struct {
	Name  string             `yaml:"name"`
	Level int32              `yaml:"level"`
	Stats map[string]float64 `yaml:"stats"`
}

// --- conversion ---

func parseStats(raw map[string]float64) (model.Stats, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(model.Stats, len(raw))
	for name, v := range raw {
		attr, err := model.ParseAttribute(name)
		if err != nil {
			return nil, err
		}
		out[attr] = v
	}
	return out, nil
}

// parseOptional returns zero for an empty name.
func parseOptional[T ~int8](name string, parse func(string) (T, error)) (T, error) {
	if name == "" {
		return 0, nil
	}
	return parse(name)
}

func (t *Tables) loadItems(raw []byte) (int, error) {
	var file struct {
		Items []itemDef `yaml:"items"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return 0, fmt.Errorf("parsing yaml: %w", err)
	}

	for i := range file.Items {
		tmpl, err := convertItemDef(&file.Items[i])
		if err != nil {
			return 0, fmt.Errorf("item %d: %w", file.Items[i].ID, err)
		}
		t.Items.AddTemplate(tmpl)
	}
	return len(file.Items), nil
}

func convertItemDef(def *itemDef) (*model.ItemTemplate, error) {
	typ, err := model.ParseItemType(def.Type)
	if err != nil {
		return nil, err
	}
	elem, err := parseOptional(def.Element, model.ParseElement)
	if err != nil {
		return nil, err
	}
	class, err := parseOptional(def.RequiredClass, model.ParseClass)
	if err != nil {
		return nil, err
	}
	stats, err := parseStats(def.Stats)
	if err != nil {
		return nil, err
	}
	if typ == model.ItemTypeFabao && !model.ValidSlot(def.FabaoSlot) {
		return nil, fmt.Errorf("fabao slot %d out of range", def.FabaoSlot)
	}

	return &model.ItemTemplate{
		ItemID:        def.ID,
		Name:          def.Name,
		Type:          typ,
		WeaponKind:    def.WeaponKind,
		Element:       elem,
		Stats:         stats,
		SetID:         def.Set,
		Passives:      def.Passives,
		Rarity:        def.Rarity,
		RequiredClass: class,
		MinLevel:      def.MinLevel,
		FabaoSlot:     def.FabaoSlot,
	}, nil
}

func (t *Tables) loadSets(raw []byte) (int, error) {
	var file struct {
		Sets []setDef `yaml:"sets"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return 0, fmt.Errorf("parsing yaml: %w", err)
	}

	for _, def := range file.Sets {
		tiers := make([]SetTier, 0, len(def.Tiers))
		for _, td := range def.Tiers {
			if td.Count <= 0 {
				return 0, fmt.Errorf("set %q: tier count must be positive, got %d", def.ID, td.Count)
			}
			stats, err := parseStats(td.Stats)
			if err != nil {
				return 0, fmt.Errorf("set %q: %w", def.ID, err)
			}
			tiers = append(tiers, SetTier{Count: td.Count, Stats: stats, Passives: td.Passives})
		}
		t.Sets.Put(def.ID, tiers)
	}
	return len(file.Sets), nil
}

func (t *Tables) loadRaces(raw []byte) (int, error) {
	var file struct {
		Races []raceDef `yaml:"races"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return 0, fmt.Errorf("parsing yaml: %w", err)
	}

	for _, def := range file.Races {
		race, err := model.ParseRace(def.Race)
		if err != nil {
			return 0, err
		}
		attrs := make([]model.Attribute, 0, len(def.Attributes))
		for _, name := range def.Attributes {
			a, err := model.ParseAttribute(name)
			if err != nil {
				return 0, fmt.Errorf("race %s: %w", def.Race, err)
			}
			attrs = append(attrs, a)
		}
		t.Races.Put(race, RaceBonus{Base: def.Base, Attributes: attrs})
	}
	return len(file.Races), nil
}

func (t *Tables) loadClasses(raw []byte) (int, error) {
	var file classesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return 0, fmt.Errorf("parsing yaml: %w", err)
	}

	if file.QualificationThreshold != nil {
		t.Classes.SetQualificationThreshold(*file.QualificationThreshold)
	}
	for _, def := range file.Classes {
		class, err := model.ParseClass(def.Class)
		if err != nil {
			return 0, err
		}
		t.Classes.Forbid(class, def.ForbiddenWeapons...)
	}
	return len(file.Classes), nil
}

func (t *Tables) loadReactions(raw []byte) (int, error) {
	var file struct {
		Reactions []reactionDef `yaml:"reactions"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return 0, fmt.Errorf("parsing yaml: %w", err)
	}

	for i := range file.Reactions {
		def := &file.Reactions[i]
		key, r, err := convertReactionDef(def)
		if err != nil {
			return 0, fmt.Errorf("reaction %s/%s: %w", def.Mark, def.Incoming, err)
		}
		t.Reactions.Put(key.Mark, key.Incoming, r)
	}
	return len(file.Reactions), nil
}

func convertReactionDef(def *reactionDef) (model.ReactionKey, model.Reaction, error) {
	mark, err := model.ParseElement(def.Mark)
	if err != nil {
		return model.ReactionKey{}, model.Reaction{}, err
	}
	incoming, err := model.ParseElement(def.Incoming)
	if err != nil {
		return model.ReactionKey{}, model.Reaction{}, err
	}
	kind, err := model.ParseReactionKind(def.Kind)
	if err != nil {
		return model.ReactionKey{}, model.Reaction{}, err
	}

	r := model.Reaction{
		Name:             def.Name,
		Kind:             kind,
		DamageMultiplier: def.DamageMultiplier,
		DamageBonus:      def.DamageBonus,
		BuffValue:        def.BuffValue,
		BuffMultiplier:   def.BuffMultiplier,
		BuffDuration:     def.BuffDuration,
		ShieldFraction:   def.ShieldFraction,
	}
	if kind == model.ReactionCrowdControl || kind == model.ReactionBuffGrant {
		r.Buff, err = model.ParseBuffKind(def.Buff)
		if err != nil {
			return model.ReactionKey{}, model.Reaction{}, err
		}
		if r.BuffDuration <= 0 {
			return model.ReactionKey{}, model.Reaction{}, errors.New("buff duration must be positive")
		}
	}
	return model.ReactionKey{Mark: mark, Incoming: incoming}, r, nil
}

func (t *Tables) loadMobs(raw []byte) (int, error) {
	var file struct {
		Mobs []mobDef `yaml:"mobs"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return 0, fmt.Errorf("parsing yaml: %w", err)
	}

	for _, def := range file.Mobs {
		stats, err := parseStats(def.Stats)
		if err != nil {
			return 0, fmt.Errorf("mob %q: %w", def.Name, err)
		}
		t.Mobs.AddTemplate(&MobTemplate{Name: def.Name, Level: def.Level, Stats: stats})
	}
	return len(file.Mobs), nil
}
