package mocks

//go:generate mockery --name SeedStore --srcpkg github.com/voltline/renewable-ts/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name SeedTx --srcpkg github.com/voltline/renewable-ts/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name QueryStore --srcpkg github.com/voltline/renewable-ts/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
