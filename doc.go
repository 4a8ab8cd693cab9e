// Package wargamer provides a client for the Wargaming.net public API.
//
// A Client targets one product (World of Tanks, Blitz, Console, World of
// Warships, World of Warplanes or the cross-game Wargaming.net API) in one
// realm. It builds request URLs, attaches the application ID, access token
// and language, decodes the JSON envelope and turns remote errors into
// structured errors from github.com/jmgilman/go/errors.
//
// # Product Clients
//
// The product constructors bundle a Client with its modules:
//
//	wot, err := wargamer.NewWorldOfTanks(wargamer.RealmEU, appID,
//	    wargamer.WithLanguage("en"),
//	)
//	if err != nil {
//	    return err
//	}
//
//	// By ID: one request to encyclopedia/vehicles.
//	vehicle, err := wot.Tankopedia.FindVehicle(ctx, 2849)
//
//	// By name: the vehicle listing is fetched once, indexed, and searched.
//	vehicle, err = wot.Tankopedia.FindVehicle(ctx, "wolverine")
//
// # Caching
//
// Three caches are involved:
//
//   - the response cache, an expiring LRU of GET responses private to a client
//   - the names cache ("<prefix>:names"), holding one search index per
//     listing endpoint
//   - the meta cache ("<prefix>:meta"), holding translation tables
//
// The names and meta caches live in a cache.Manager. Clients created with the
// same manager and prefix (WithCacheManager, WithCachePrefix) share them;
// otherwise each client gets its own.
//
// # Errors
//
// Every error is an errors.PlatformError. Remote errors wrap *APIError and
// transport failures wrap *TransportError, both reachable with errors.As.
// Argument errors match the package sentinels with errors.Is:
//
//	vehicle, err := wot.Tankopedia.FindVehicle(ctx, 3.5)
//	if errors.Is(err, wargamer.ErrInvalidIdentifierType) {
//	    // no request was sent
//	}
package wargamer
