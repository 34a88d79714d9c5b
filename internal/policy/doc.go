// Package policy decides who may read, create, modify or delete users,
// projects, memberships, submissions and comments.
//
// Every decision is recomputed from persisted state. A decision either
// returns the resource the caller is allowed to act on, or an *errs.Error
// whose Code names the denial (Forbidden, NotFound, ...). Existence and
// authorization checks interleave in a fixed order per operation, and the
// first failing check determines the error the caller sees.
//
// Project membership is the single authorization primitive: a user is a
// member of a project when a member-of-record row exists for the pair, or
// when the user created the project.
package policy
