// Package input merges the values a request carries in its query string,
// form body and JSON body into one bag.
//
//	in, err := input.FromRequest(r, input.WithSanitizer())
//	if err != nil {
//		return err
//	}
//	attrs := in.Only("username", "password")
package input
