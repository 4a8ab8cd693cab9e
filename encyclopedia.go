package wargamer

import (
	"context"
)

const encyclopediaInfo = "encyclopedia/info"

// Translation table names returned by encyclopedia/info.
const (
	TranslationVehicleTypes        = "vehicle_types"
	TranslationVehicleNations      = "vehicle_nations"
	TranslationVehicleCrewRoles    = "vehicle_crew_roles"
	TranslationLanguages           = "languages"
	TranslationAchievementSections = "achievement_sections"
	TranslationShipTypes           = "ship_types"
	TranslationShipNations         = "ship_nations"
	TranslationShipModules         = "ship_modules"
	TranslationShipModifications   = "ship_modifications"
)

// encyclopedia is the shared part of every product encyclopedia.
type encyclopedia struct {
	client *Client
	lookup Lookup
}

// find parses identifier and resolves it through the client's resolver.
func (e encyclopedia) find(ctx context.Context, identifier any) (Record, error) {
	id, err := ParseIdentifier(identifier)
	if err != nil {
		return nil, err
	}
	return e.client.resolver.Resolve(ctx, id, e.lookup)
}

func (e encyclopedia) localize(ctx context.Context, typ, slug string) (string, bool, error) {
	return e.client.localizer.LocalizeString(ctx, encyclopediaInfo, typ, slug)
}

// Tankopedia is the vehicle encyclopedia of the tank products.
type Tankopedia struct {
	encyclopedia
}

func newTankopedia(client *Client, searchFields ...string) *Tankopedia {
	return &Tankopedia{encyclopedia{
		client: client,
		lookup: Lookup{
			SearchFields:  searchFields,
			IdentifierKey: "tank_id",
			IndexEndpoint: "encyclopedia/vehicles",
			DataEndpoint:  "encyclopedia/vehicles",
		},
	}}
}

// FindVehicle returns the encyclopedia entry of a vehicle. An integer
// identifier is the vehicle ID; a string is matched against vehicle names
// and the closest match is used. A nil record means nothing matched.
func (t *Tankopedia) FindVehicle(ctx context.Context, identifier any) (Record, error) {
	return t.find(ctx, identifier)
}

// TopModules returns the most expensive module of each type in a vehicle's
// module tree. A nil map means the vehicle was not found.
func (t *Tankopedia) TopModules(ctx context.Context, identifier any) (map[string]Module, error) {
	vehicle, err := t.FindVehicle(ctx, identifier)
	if err != nil || vehicle == nil {
		return nil, err
	}

	tree, err := ParseModuleTree(vehicle["modules_tree"])
	if err != nil {
		return nil, err
	}
	return ExtractTopModules(tree), nil
}

// LocalizeVehicleType translates a vehicle type slug such as "heavyTank".
func (t *Tankopedia) LocalizeVehicleType(ctx context.Context, slug string) (string, bool, error) {
	return t.localize(ctx, TranslationVehicleTypes, slug)
}

// LocalizeVehicleNation translates a nation slug such as "ussr".
func (t *Tankopedia) LocalizeVehicleNation(ctx context.Context, slug string) (string, bool, error) {
	return t.localize(ctx, TranslationVehicleNations, slug)
}

// LocalizeCrewRole translates a crew role slug such as "gunner".
func (t *Tankopedia) LocalizeCrewRole(ctx context.Context, slug string) (string, bool, error) {
	return t.localize(ctx, TranslationVehicleCrewRoles, slug)
}

// LocalizeLanguage translates a language slug such as "en".
func (t *Tankopedia) LocalizeLanguage(ctx context.Context, slug string) (string, bool, error) {
	return t.localize(ctx, TranslationLanguages, slug)
}

// LocalizeAchievementSection returns the name of an achievement section.
func (t *Tankopedia) LocalizeAchievementSection(ctx context.Context, slug string) (string, bool, error) {
	value, ok, err := t.client.localizer.Localize(ctx, encyclopediaInfo, TranslationAchievementSections, slug)
	if err != nil || !ok {
		return "", false, err
	}

	section, ok := value.(map[string]any)
	if !ok {
		return "", false, nil
	}
	name, ok := section["name"].(string)
	return name, ok, nil
}

// ShipEncyclopedia is the World of Warships encyclopedia.
type ShipEncyclopedia struct {
	encyclopedia
}

func newShipEncyclopedia(client *Client) *ShipEncyclopedia {
	return &ShipEncyclopedia{encyclopedia{
		client: client,
		lookup: Lookup{
			SearchFields:  []string{"name"},
			IdentifierKey: "ship_id",
			IndexEndpoint: "encyclopedia/ships",
			DataEndpoint:  "encyclopedia/ships",
		},
	}}
}

// FindShip returns the encyclopedia entry of a ship by ID or name.
func (s *ShipEncyclopedia) FindShip(ctx context.Context, identifier any) (Record, error) {
	return s.find(ctx, identifier)
}

// LocalizeShipType translates a ship type slug.
func (s *ShipEncyclopedia) LocalizeShipType(ctx context.Context, slug string) (string, bool, error) {
	return s.localize(ctx, TranslationShipTypes, slug)
}

// LocalizeShipNation translates a ship nation slug.
func (s *ShipEncyclopedia) LocalizeShipNation(ctx context.Context, slug string) (string, bool, error) {
	return s.localize(ctx, TranslationShipNations, slug)
}

// LocalizeShipModule translates a ship module slug.
func (s *ShipEncyclopedia) LocalizeShipModule(ctx context.Context, slug string) (string, bool, error) {
	return s.localize(ctx, TranslationShipModules, slug)
}

// LocalizeShipModification translates a ship modification slug.
func (s *ShipEncyclopedia) LocalizeShipModification(ctx context.Context, slug string) (string, bool, error) {
	return s.localize(ctx, TranslationShipModifications, slug)
}

// LocalizeLanguage translates a language slug.
func (s *ShipEncyclopedia) LocalizeLanguage(ctx context.Context, slug string) (string, bool, error) {
	return s.localize(ctx, TranslationLanguages, slug)
}

// PlaneEncyclopedia is the World of Warplanes encyclopedia.
type PlaneEncyclopedia struct {
	encyclopedia
}

func newPlaneEncyclopedia(client *Client) *PlaneEncyclopedia {
	return &PlaneEncyclopedia{encyclopedia{
		client: client,
		lookup: Lookup{
			SearchFields:  []string{"name_i18n"},
			IdentifierKey: "plane_id",
			IndexEndpoint: "encyclopedia/planes",
			DataEndpoint:  "encyclopedia/planeinfo",
		},
	}}
}

// FindPlane returns the encyclopedia/planeinfo entry of a plane by ID or
// name.
func (p *PlaneEncyclopedia) FindPlane(ctx context.Context, identifier any) (Record, error) {
	return p.find(ctx, identifier)
}
