package service

var UnknownUserHash = unknownUserHash
