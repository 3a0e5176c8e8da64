/*
Package queue defines the tasks in which a cross-validation run is split,
one per fold, as well as an interface for a Queue to manage them so a pool
of workers can process them.

It also provides an in-memory implementation of the Queue interface
*/
package queue
