// Package route maps filesystem operations on concrete paths to handlers.
//
// A Router holds templates such as "/:identifier" registered per operation
// kind (LIST, STAT, READ). Match walks the table in registration order and
// returns the first template whose segment count and literal segments fit
// the request, binding ":name" segments into Params.
//
// A Dispatcher sits between the mount loop and the handlers. Handlers return
// an explicit Result; the dispatcher turns it into a Reply:
//   - LIST: no route or NotFound gives an empty listing; entries are collected
//     before replying
//   - STAT: no route or NotFound means "does not exist"
//   - READ: no route, NotFound or empty data gives util.ErrNotFound
//
// Any handler error, panics included, becomes an error wrapping util.ErrIO for
// that request only.
package route
