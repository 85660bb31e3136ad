// Package client provides a Go client for the paste.rs paste service (https://paste.rs).
//
// # Installation
//
//	go get github.com/tombowditch/pasters/client
//
// # Quick Start
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//
//		"github.com/tombowditch/pasters/client"
//	)
//
//	func main() {
//		c, err := client.New()
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		// Create a paste
//		rec, err := c.Create(context.Background(), []byte("Hello, World!"))
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println("Paste URL:", rec.URL)
//
//		// Retrieve a paste (by URL, scheme-less URL or ID)
//		ref, err := c.Resolve(rec.URL)
//		if err != nil {
//			log.Fatal(err)
//		}
//		content, err := c.Fetch(context.Background(), ref)
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println("Content:", content)
//	}
//
// # Partial Pastes
//
// paste.rs truncates content above its size limit and answers 206. The paste
// still exists; only the stored content is shorter:
//
//	if rec.Outcome == client.PartiallyCreated {
//		// Content was cut off by the server
//	}
//
// # Custom Configuration
//
//	c, err := client.New(
//		client.WithBaseURL("http://localhost:3334/"),
//		client.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}),
//	)
//
// # Error Handling
//
//	ref, err := c.Resolve("https://example.com/osx")
//	if client.IsInvalidURL(err) {
//		// Looked like a URL but not one of ours
//	}
//	content, err := c.Fetch(ctx, ref)
//	if client.IsRemote(err) {
//		// Paste doesn't exist or the server failed
//	}
//	if client.IsTransport(err) {
//		// Network trouble; errors.Unwrap(err) has the cause
//	}
package client
