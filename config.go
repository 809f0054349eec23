// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import "go.uber.org/zap"

// configs is used to store the values of different parameters of the session
type configs struct {
	varnum          int         // number of variables declared in New
	nodesize        int         // initial number of nodes in the table
	maxnodesize     int         // Maximum total number of nodes (0 if no limit)
	maxnodeincrease int         // Maximum number of nodes that can be added to the table at each resize (0 if no limit)
	itebudget       int         // Maximum number of subproblems expanded by a single call to Ite (0 if no limit)
	logger          *zap.Logger // Destination of debug and warning messages
}

// Option is the type of configuration options accepted by New.
type Option func(*configs)

func makeconfigs(varnum int) *configs {
	c := &configs{varnum: varnum}
	c.maxnodeincrease = _DEFAULTMAXNODEINC
	// we build enough nodes to include the two constants and all the variables
	c.nodesize = varnum + 2
	c.logger = zap.NewNop()
	return c
}

// Nodesize is a configuration option (function). Used as a parameter in New it
// sets a preferred initial size for the node table. The size of the table can
// increase during computation. By default we create a table large enough to
// include the two constants and the elementary node of each variable.
func Nodesize(size int) Option {
	return func(c *configs) {
		if size >= c.varnum+2 {
			c.nodesize = size
		}
	}
}

// Maxnodesize is a configuration option (function). Used as a parameter in New
// it sets a limit to the number of nodes in the session, constants included.
// An operation trying to raise the number of nodes above this limit returns an
// error wrapping ErrCapacityExceeded. The default value (0) means that there
// is no limit.
func Maxnodesize(size int) Option {
	return func(c *configs) {
		if size >= 0 {
			c.maxnodesize = size
		}
	}
}

// Maxnodeincrease is a configuration option (function). Used as a parameter in
// New it sets a limit on the increase in size of the node table. Below this
// limit we double the size of the table each time we need to resize it. The
// default value is about a million nodes. Set the value to zero to avoid
// imposing a limit.
func Maxnodeincrease(size int) Option {
	return func(c *configs) {
		if size >= 0 {
			c.maxnodeincrease = size
		}
	}
}

// Itebudget is a configuration option (function). Used as a parameter in New
// it sets the maximal number of subproblems that a single call to Ite (or to
// one of the derived operators) may expand before giving up with an error
// wrapping ErrResourceExhausted. Subproblems found in the memo table are not
// counted. The default value (0) means that there is no limit.
func Itebudget(steps int) Option {
	return func(c *configs) {
		if steps >= 0 {
			c.itebudget = steps
		}
	}
}

// Logger is a configuration option (function). Used as a parameter in New it
// sets the logger used to report resizes and failures. By default nothing is
// logged.
func Logger(l *zap.Logger) Option {
	return func(c *configs) {
		if l != nil {
			c.logger = l
		}
	}
}
