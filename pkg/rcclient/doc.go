// Package rcclient provides the primary entry point for constructing a
// Rocket.Chat REST API client that implements the rocketchat.Client interface.
//
// It layers configuration, HTTP transport and the login session on top of the
// resource interfaces and types defined in the rocketchat package. Most
// applications should import rcclient to build a client, then use the
// returned rocketchat.Client to reach the resource clients, for example
// Channels(), Users(), Chat(), etc.
//
// Quick start
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
//
//	  // Log in with a username (or email address) and password.
//	  cli, err := rcclient.New(ctx, &rocketchat.Config{
//	    ServerURL: "https://chat.example.com",
//	    Username:  "bot",
//	    Password:  "pass",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Or reuse a session issued earlier:
//	  cli, err = rcclient.NewWithToken(ctx, "chat.example.com", "token", "user-id")
//	  if err != nil { log.Fatal(err) }
//
//	  _, err = cli.Chat().PostMessage(ctx, &rocketchat.PostMessage{
//	    Channel: "#general",
//	    Text:    "hello",
//	  })
//	  if err != nil { log.Fatal(err) }
//	}
//
// # Server URL
//
// The server URL may omit the scheme, in which case https is assumed. A
// trailing slash is ignored.
//
// # Helpers
//
// The package also provides convenience constructors NewWithServer,
// NewWithToken and NewWithPassword that wrap New with the appropriate
// configuration.
package rcclient
