package ordering_test

import "github.com/jhoicas/ecommerce-api/internal/domain/repository"

func repositoryAll() repository.OrderFilter { return repository.OrderFilter{} }
