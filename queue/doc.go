/*
Package queue defines the tasks of growing an ID3 tree, one per node still to
be developed, and a Queue interface to hand them to workers.

New returns the in-memory, FIFO implementation used by id3.Grow, which makes
the tree grow level by level.
*/
package queue
