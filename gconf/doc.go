/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each extension declares its own configuration model and stores a single
instance of it under the "_c:<package>" key. The configuration is loaded from
the genesis file and can later be changed by its owner with a signed patch
message.

Not being able to get a configuration value is a critical condition for the
application and there is no recovery path for the client.
*/
package gconf
