/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
Each bucket contains only one type of model, and a model
is stored under a primary key that is unique in the bucket.

Buckets can have any number of secondary indexes. Each
index stores the set of primary keys of all models that
produced the same index value. An index can be unique,
in which case saving a model whose index value is already
taken by another model fails.

Sequences provide monotonically increasing primary keys,
encoded so that bytes.Compare and numeric order agree.
*/
package orm
