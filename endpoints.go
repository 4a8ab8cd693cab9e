package wargamer

import (
	"fmt"
	"strings"
)

// Realm identifies a regional server cluster.
type Realm string

// Known realms.
const (
	RealmRU   Realm = "ru"
	RealmEU   Realm = "eu"
	RealmNA   Realm = "na"
	RealmKR   Realm = "kr"
	RealmAsia Realm = "asia"
	RealmXbox Realm = "xbox"
	RealmPS4  Realm = "ps4"
)

// Product identifies one of the remote APIs.
type Product string

// Known products.
const (
	ProductWorldOfTanks        Product = "wot"
	ProductWorldOfTanksBlitz   Product = "wotb"
	ProductWorldOfTanksConsole Product = "wotx"
	ProductWorldOfWarships     Product = "wows"
	ProductWorldOfWarplanes    Product = "wowp"
	ProductWargaming           Product = "wgn"
)

var realmTLD = map[Realm]string{
	RealmRU:   "ru",
	RealmEU:   "eu",
	RealmNA:   "com",
	RealmKR:   "kr",
	RealmAsia: "asia",
	RealmXbox: "xbox",
	RealmPS4:  "ps4",
}

var baseURI = map[Product]func(tld string) string{
	ProductWorldOfTanks: func(tld string) string {
		return fmt.Sprintf("https://api.worldoftanks.%s/wot", tld)
	},
	ProductWorldOfTanksBlitz: func(tld string) string {
		return fmt.Sprintf("https://api.wotblitz.%s/wotb", tld)
	},
	ProductWorldOfTanksConsole: func(tld string) string {
		return fmt.Sprintf("https://api-%s-console.worldoftanks.com/wotx", tld)
	},
	ProductWorldOfWarships: func(tld string) string {
		return fmt.Sprintf("https://api.worldofwarships.%s/wows", tld)
	},
	ProductWorldOfWarplanes: func(tld string) string {
		return fmt.Sprintf("https://api.worldofwarplanes.%s/wowp", tld)
	},
	ProductWargaming: func(tld string) string {
		return fmt.Sprintf("https://api.worldoftanks.%s/wgn", tld)
	},
}

// ParseRealm normalizes s and checks it names a known realm.
func ParseRealm(s string) (Realm, error) {
	realm := Realm(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := realmTLD[realm]; !ok {
		return "", sentinel(ErrUnknownRealmOrProduct, fmt.Sprintf("unknown realm %q", s),
			map[string]interface{}{"realm": s})
	}
	return realm, nil
}

// ParseProduct normalizes s and checks it names a known product.
func ParseProduct(s string) (Product, error) {
	product := Product(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := baseURI[product]; !ok {
		return "", sentinel(ErrUnknownRealmOrProduct, fmt.Sprintf("unknown product %q", s),
			map[string]interface{}{"product": s})
	}
	return product, nil
}

// EndpointResolver maps a realm and product to the base URI of an API.
type EndpointResolver interface {
	// BaseURI returns the base URI without a trailing slash.
	// Returns ErrUnknownRealmOrProduct for unknown pairs.
	BaseURI(realm Realm, product Product) (string, error)
}

// DefaultEndpoints resolves the public Wargaming.net API hosts.
type DefaultEndpoints struct{}

// BaseURI implements EndpointResolver.
func (DefaultEndpoints) BaseURI(realm Realm, product Product) (string, error) {
	tld, ok := realmTLD[realm]
	build, known := baseURI[product]
	if !ok || !known {
		return "", sentinel(ErrUnknownRealmOrProduct, "unknown realm or product given",
			map[string]interface{}{"realm": string(realm), "product": string(product)})
	}
	return build(tld), nil
}

// StaticEndpoints resolves every realm to a single host, with the product
// appended as the path: "<BaseURL>/<product>". It is meant for proxies and
// tests.
type StaticEndpoints struct {
	BaseURL string
}

// BaseURI implements EndpointResolver.
func (s StaticEndpoints) BaseURI(realm Realm, product Product) (string, error) {
	if _, ok := realmTLD[realm]; !ok {
		return "", sentinel(ErrUnknownRealmOrProduct, "unknown realm given",
			map[string]interface{}{"realm": string(realm)})
	}
	if _, ok := baseURI[product]; !ok {
		return "", sentinel(ErrUnknownRealmOrProduct, "unknown product given",
			map[string]interface{}{"product": string(product)})
	}
	return strings.TrimRight(s.BaseURL, "/") + "/" + string(product), nil
}
