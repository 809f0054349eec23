// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package robdd defines a concrete type for Reduced Ordered Binary Decision
Diagrams (ROBDD), a canonical data structure used to represent Boolean
functions over a set of named variables.

Basics

A diagram lives in a Session, created with New from an ordered list of
variable names. Each variable is represented by an integer index, called a
level, given by its position in the declaration order. Variables can be added
at the end of the order with Declare, but never reordered.

Most operations return a Node; that is a small, comparable handle on a vertex
of the diagram. A Node stores the index of the vertex in the node table of its
session together with an identifier of the session itself, so that handles
coming from another session are rejected. We use the convention that 1
(respectively 0) is the index of the constant function True (respectively
False). Because diagrams are canonical, two Nodes of the same session denote
the same function if and only if they are equal (==).

Building diagrams

Diagrams can be built by combining the elementary nodes returned by Variable
and Terminal with Ite (if-then-else) and its derived operators And, Or, Not,
Xor, Imp, Equiv and Apply. They can also be synthesized from the rows of a
truth table with BuildFromRows. Both ways go through the same unique table and
return the same Node for the same function.

Memory management

Nodes are never freed individually. A session owns every node it ever created
until the session itself becomes unreachable, at which point the Go runtime
reclaims the whole table at once. The size of the node table can be bounded
with the Maxnodesize option and the work done by a single call to Ite with the
Itebudget option.

A Session is not safe for concurrent use by multiple goroutines.
*/
package robdd
