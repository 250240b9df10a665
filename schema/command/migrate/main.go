package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"strings"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v2"

	"github.com/bitmark-inc/neighbourmatch-api/schema"
	"github.com/bitmark-inc/neighbourmatch-api/store"
)

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("neighbourmatch")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetDefault("orm.dialect", "postgres")
}

func main() {
	var seedFile string
	flag.StringVar(&seedFile, "seed", "", "[optional] yaml file of demo residents to load into the directory")
	flag.Parse()

	dialect := viper.GetString("orm.dialect")
	db, err := gorm.Open(dialect, viper.GetString("orm.conn"))
	if err != nil {
		panic(err)
	}

	if dialect == "postgres" {
		if err := db.Exec(`CREATE SCHEMA IF NOT EXISTS neighbourmatch`).Error; err != nil {
			panic(err)
		}

		if err := db.Exec("SET search_path TO neighbourmatch").Error; err != nil {
			panic(err)
		}
	}

	if err := store.Migrate(db); err != nil {
		panic(err)
	}

	schema.NewMongoDBIndexer(viper.GetString("mongo.conn"), viper.GetString("mongo.database")).IndexAll()

	if seedFile != "" {
		if err := seedUsers(seedFile); err != nil {
			panic(err)
		}
	}
}

type seedUser struct {
	ID            string   `yaml:"id"`
	FullName      string   `yaml:"full_name"`
	Username      string   `yaml:"username"`
	Email         string   `yaml:"email"`
	PhoneNumber   string   `yaml:"phone_number"`
	ApartmentName string   `yaml:"apartment_name"`
	Block         string   `yaml:"block"`
	FlatNumber    string   `yaml:"flat_number"`
	Role          string   `yaml:"role"`
	Skills        []string `yaml:"skills"`
	Availability  []string `yaml:"availability"`
	Latitude      float64  `yaml:"latitude"`
	Longitude     float64  `yaml:"longitude"`
}

func seedUsers(file string) error {
	fmt.Println("initialize users collection")

	data, err := ioutil.ReadFile(file)
	if err != nil {
		return err
	}

	var fixtures []seedUser
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return err
	}

	ctx := context.Background()
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(1)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	c := client.Database(viper.GetString("mongo.database")).Collection(schema.UserCollection)

	now := time.Now().UTC()
	users := make([]interface{}, 0, len(fixtures))
	for _, f := range fixtures {
		users = append(users, schema.User{
			ID:            f.ID,
			FullName:      f.FullName,
			Username:      f.Username,
			Email:         f.Email,
			PhoneNumber:   f.PhoneNumber,
			ApartmentName: f.ApartmentName,
			Block:         f.Block,
			FlatNumber:    f.FlatNumber,
			Role:          f.Role,
			SkillsOffered: f.Skills,
			Availability:  f.Availability,
			Location:      &schema.Location{Latitude: f.Latitude, Longitude: f.Longitude},
			CreatedAt:     now,
		})
	}

	if len(users) == 0 {
		return nil
	}

	// residents seeded by an earlier run are kept as they are
	if _, err := c.InsertMany(ctx, users, options.InsertMany().SetOrdered(false)); err != nil {
		if errs, hasErr := err.(mongo.BulkWriteException); hasErr {
			for _, e := range errs.WriteErrors {
				if e.Code != store.DuplicateKeyCode {
					return err
				}
			}
			return nil
		}
		return err
	}

	return nil
}
