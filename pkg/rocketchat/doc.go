// Package rocketchat provides types, interfaces, and helpers for working with
// the Rocket.Chat REST API.
//
// # Overview
//
// The rocketchat package defines the parameter mapping (Params), the request
// and response descriptors, the error taxonomy, the generic Pager and the
// interfaces of the resource clients (ChannelsClient, UsersClient, ...). A
// concrete implementation is provided by the rcclient package, which wires
// configuration, transport and the session. Most consumers should import
// rcclient to construct a client and then use the interfaces defined here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/rocketchat-client/pkg/rcclient"
//	  "github.com/fivetwenty-io/rocketchat-client/pkg/rocketchat"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := rcclient.New(ctx, &rocketchat.Config{
//	    ServerURL: "https://chat.example.com",
//	    Username:  "bot",
//	    Password:  "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  info, err := cli.Info(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = info
//	}
//
// # Parameters
//
// Endpoint bindings take typed option structs which are turned into Params
// through their mapstructure tags. Every option struct carries an Extra bundle
// for fields the binding does not model; explicit fields win on collision:
//
//	opts := &rocketchat.ListOptions{Sort: `{"name": 1}`, Extra: rocketchat.Params{"type": "c"}}
//
// # Pagination
//
// Listings return a Pager. Constructing it fetches the first page, so errors
// surface at the call site. Further pages are fetched only as items are
// consumed:
//
//	pager, err := cli.Channels().List(ctx, &rocketchat.ListOptions{
//	  Pagination: rocketchat.PaginationOptions{Count: 100, MaxCount: rocketchat.Int(250)},
//	})
//	if err != nil { /* handle error */ }
//	for channel, err := range pager.Items() {
//	  if err != nil { break }
//	  _ = channel
//	}
//
// # Errors
//
// A response outside the 2xx/3xx range becomes an *APIError when the server
// answered with a JSON object carrying "success": false, and a
// *TransportError otherwise. ErrorType and HasErrorType expose the server's
// machine readable error tag.
package rocketchat
