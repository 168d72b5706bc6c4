// Package manifest loads the declarative event catalogue: HCL files whose
// `event` blocks name a message kind and declare its payload shape as a type
// expression.
//
//	event "chat_message" {
//	  description = "a user-visible chat line"
//	  payload     = object({ user = string, body = string })
//	}
//
// The loader merges every catalogue file under the given paths into a single
// immutable schema registry, rejecting duplicate event names.
package manifest
