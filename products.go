package wargamer

// WorldOfTanks is a World of Tanks API client.
type WorldOfTanks struct {
	*Client
	Accounts   *Accounts
	Tankopedia *Tankopedia
}

// NewWorldOfTanks creates a World of Tanks client.
func NewWorldOfTanks(realm Realm, applicationID string, opts ...Option) (*WorldOfTanks, error) {
	c, err := New(ProductWorldOfTanks, realm, applicationID, opts...)
	if err != nil {
		return nil, err
	}
	return &WorldOfTanks{
		Client:     c,
		Accounts:   &Accounts{client: c},
		Tankopedia: newTankopedia(c, "name", "short_name"),
	}, nil
}

// WorldOfTanksBlitz is a World of Tanks Blitz API client.
type WorldOfTanksBlitz struct {
	*Client
	Accounts   *Accounts
	Tankopedia *Tankopedia
}

// NewWorldOfTanksBlitz creates a World of Tanks Blitz client.
func NewWorldOfTanksBlitz(realm Realm, applicationID string, opts ...Option) (*WorldOfTanksBlitz, error) {
	c, err := New(ProductWorldOfTanksBlitz, realm, applicationID, opts...)
	if err != nil {
		return nil, err
	}
	return &WorldOfTanksBlitz{
		Client:     c,
		Accounts:   &Accounts{client: c},
		Tankopedia: newTankopedia(c, "name"),
	}, nil
}

// WorldOfTanksConsole is a World of Tanks Console API client.
type WorldOfTanksConsole struct {
	*Client
	Accounts   *Accounts
	Tankopedia *Tankopedia
}

// NewWorldOfTanksConsole creates a World of Tanks Console client. Console
// realms are RealmXbox and RealmPS4.
func NewWorldOfTanksConsole(realm Realm, applicationID string, opts ...Option) (*WorldOfTanksConsole, error) {
	c, err := New(ProductWorldOfTanksConsole, realm, applicationID, opts...)
	if err != nil {
		return nil, err
	}
	return &WorldOfTanksConsole{
		Client:     c,
		Accounts:   &Accounts{client: c},
		Tankopedia: newTankopedia(c, "name", "short_name"),
	}, nil
}

// WorldOfWarships is a World of Warships API client.
type WorldOfWarships struct {
	*Client
	Accounts     *Accounts
	Encyclopedia *ShipEncyclopedia
}

// NewWorldOfWarships creates a World of Warships client.
func NewWorldOfWarships(realm Realm, applicationID string, opts ...Option) (*WorldOfWarships, error) {
	c, err := New(ProductWorldOfWarships, realm, applicationID, opts...)
	if err != nil {
		return nil, err
	}
	return &WorldOfWarships{
		Client:       c,
		Accounts:     &Accounts{client: c},
		Encyclopedia: newShipEncyclopedia(c),
	}, nil
}

// WorldOfWarplanes is a World of Warplanes API client.
type WorldOfWarplanes struct {
	*Client
	Accounts     *Accounts
	Encyclopedia *PlaneEncyclopedia
}

// NewWorldOfWarplanes creates a World of Warplanes client.
func NewWorldOfWarplanes(realm Realm, applicationID string, opts ...Option) (*WorldOfWarplanes, error) {
	c, err := New(ProductWorldOfWarplanes, realm, applicationID, opts...)
	if err != nil {
		return nil, err
	}
	return &WorldOfWarplanes{
		Client:       c,
		Accounts:     &Accounts{client: c},
		Encyclopedia: newPlaneEncyclopedia(c),
	}, nil
}

// Wargaming is a Wargaming.net (cross-game) API client.
type Wargaming struct {
	*Client
	Accounts *Accounts
}

// NewWargaming creates a Wargaming.net client.
func NewWargaming(realm Realm, applicationID string, opts ...Option) (*Wargaming, error) {
	c, err := New(ProductWargaming, realm, applicationID, opts...)
	if err != nil {
		return nil, err
	}
	return &Wargaming{
		Client:   c,
		Accounts: &Accounts{client: c},
	}, nil
}
