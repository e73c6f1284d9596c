package main

func (cli *commandLine) resetPassword(uname, pwd string) error {
	usr, err := cli.usrSvc.GetByUsername(uname)
	if err != nil {
		return err
	}
	_, err = cli.usrSvc.SetPassword(usr, pwd)
	return err
}
