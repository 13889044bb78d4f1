/*
Package orm maps protobuf models onto the key value store.

The state is split into buckets. Every bucket owns a key prefix
("name:") and stores a single model type. Keys are chosen by the caller
and may be composite, for example an owner address followed by an
identifier, which allows listing all entities of an owner with a prefix
scan.
*/
package orm
