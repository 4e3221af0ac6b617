/*
Package utils contains decorators that are shared by every message handled
by the application: panic recovery, logging, transaction savepoints, action
tagging and write serialization.
*/
package utils
